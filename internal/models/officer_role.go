package models

import "time"

// OfficerRole is a club or national officer appointment: which person
// holds which post, for which term.
type OfficerRole struct {
	ID           int        `json:"id"`
	PersonID     string     `json:"personId"`
	PersonName   string     `json:"personName"`
	Position     string     `json:"position"`
	ClubID       *int       `json:"clubId"`
	TermStart    *time.Time `json:"termStart"`
	TermEnd      *time.Time `json:"termEnd"`
	LastEditedBy *string    `json:"lastEditedBy"`
	LastEditedAt *time.Time `json:"lastEditedAt"`
}

// AddOfficerRoleRequest is the body of an officer add call.
type AddOfficerRoleRequest struct {
	PersonID  string     `json:"personId" binding:"required,notblank"`
	Position  string     `json:"position" binding:"required,notblank,max=100"`
	ClubID    *int       `json:"clubId"`
	TermStart *time.Time `json:"termStart"`
	TermEnd   *time.Time `json:"termEnd"`
}

// EditOfficerRoleRequest is the body of an officer edit call.
type EditOfficerRoleRequest struct {
	ID        int        `json:"id" binding:"required"`
	Position  string     `json:"position" binding:"required,notblank,max=100"`
	ClubID    *int       `json:"clubId"`
	TermStart *time.Time `json:"termStart"`
	TermEnd   *time.Time `json:"termEnd"`
}

// DeleteOfficerRoleRequest is the body of an officer delete call.
type DeleteOfficerRoleRequest struct {
	ID int `json:"id" binding:"required"`
}
