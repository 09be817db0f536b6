package model

// User is the authenticated OpenProject user.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// Project is a remote OpenProject project.
type Project struct {
	ID         int    `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// Status is a remote workflow status selectable for new work packages.
type Status struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsClosed  bool   `json:"is_closed"`
	IsDefault bool   `json:"is_default"`
}

// WorkPackage is a trackable unit of work in OpenProject.
type WorkPackage struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
}

// TimeEntry is a remote record of hours spent against a work package on
// a given date.
type TimeEntry struct {
	ID            int     `json:"id"`
	WorkPackageID int     `json:"work_package_id"`
	SpentOn       string  `json:"spent_on"` // YYYY-MM-DD
	Hours         float64 `json:"hours"`
	Comment       string  `json:"comment,omitempty"`
}
