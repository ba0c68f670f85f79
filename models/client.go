package models

// Client is a salon customer. VisitCount and LastVisit are maintained by the
// store when sessions are recorded and are never edited directly.
type Client struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	AgeLabel       string `json:"ageLabel"` // e.g. "40代"
	Gender         string `json:"gender,omitempty"`
	FirstVisitDate string `json:"firstVisitDate,omitempty"`
	LastVisit      string `json:"lastVisit"`
	VisitCount     int    `json:"visitCount"`
	CustomerNumber string `json:"customerNumber,omitempty"`
}

// NewClientInput carries the registration fields. Name and AgeLabel are required.
type NewClientInput struct {
	Name           string `json:"name"`
	AgeLabel       string `json:"ageLabel"`
	Gender         string `json:"gender"`
	FirstVisitDate string `json:"firstVisitDate"`
	CustomerNumber string `json:"customerNumber"`
}
