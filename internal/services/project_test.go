package services

import (
	"testing"
)

func TestProjectCodePattern(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"PRJ-001", true},
		{"A", true},
		{"2024-WEB", true},
		{"WEBSITE", true},
		{"", false},
		{"-LEAD", false},
		{"prj-001", false},
		{"PRJ 001", false},
		{"PRJ_001", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := projectCodeRe.MatchString(tt.code); got != tt.expected {
				t.Errorf("projectCodeRe.MatchString(%q) = %v, expected %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestProjectListRequest_Defaults(t *testing.T) {
	req := &ProjectListRequest{}

	if req.Page != 0 {
		t.Errorf("default Page should be 0, got %d", req.Page)
	}
	if req.PageSize != 0 {
		t.Errorf("default PageSize should be 0, got %d", req.PageSize)
	}
}

func TestCreateProjectRequest_Structure(t *testing.T) {
	req := &CreateProjectRequest{
		Code:        "PRJ-002",
		Name:        "Warehouse Move",
		Description: "Relocate storage",
		Status:      "active",
	}

	if req.Code != "PRJ-002" {
		t.Errorf("Code = %q, expected PRJ-002", req.Code)
	}
	if req.Name != "Warehouse Move" {
		t.Errorf("Name = %q, expected Warehouse Move", req.Name)
	}
	if req.Status != "active" {
		t.Errorf("Status = %q, expected active", req.Status)
	}
}

func TestUpdateProjectRequest_PartialUpdate(t *testing.T) {
	desc := "new description"
	req := &UpdateProjectRequest{
		Name:        "Renamed",
		Description: &desc,
	}

	if req.Name != "Renamed" {
		t.Errorf("Name = %q, expected Renamed", req.Name)
	}
	if req.Description == nil || *req.Description != "new description" {
		t.Error("Description should be set")
	}
	if req.Status != "" {
		t.Errorf("Status should be empty, got %q", req.Status)
	}
}
