package handler

import (
	"formbuilder/internal/formbuilder/models"
	"formbuilder/internal/formbuilder/process"
	"formbuilder/internal/formbuilder/service"
)

type formResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Processes   []string `json:"processes"`
}

func toFormResponse(f models.FormConfig) formResponse {
	resp := formResponse{ID: f.ID, Name: f.Name, Description: f.Description, Processes: []string{}}
	if f.CreateStudent {
		resp.Processes = append(resp.Processes, process.StepCreateStudent)
	}
	if f.CreateFamily {
		resp.Processes = append(resp.Processes, process.StepCreateFamily)
	}
	if f.CreateParents {
		resp.Processes = append(resp.Processes, process.StepCreateParents)
	}
	return resp
}

type submissionResponse struct {
	SubmissionID      string         `json:"submission_id"`
	FormID            string         `json:"form_id"`
	Success           bool           `json:"success"`
	FailedStep        string         `json:"failed_step,omitempty"`
	Reason            string         `json:"reason,omitempty"`
	ReasonDescription string         `json:"reason_description,omitempty"`
	NeedsIntervention bool           `json:"needs_intervention,omitempty"`
	Executed          []string       `json:"executed,omitempty"`
	Compensated       []string       `json:"compensated,omitempty"`
	Data              map[string]any `json:"data,omitempty"`
}

func toSubmissionResponse(sub *service.Submission) submissionResponse {
	resp := submissionResponse{
		SubmissionID: sub.ID.String(),
		FormID:       sub.FormID,
	}
	if sub.Result == nil {
		return resp
	}
	resp.Success = sub.Success
	resp.FailedStep = sub.FailedStep
	resp.NeedsIntervention = sub.NeedsIntervention()
	resp.Executed = sub.Executed
	resp.Compensated = sub.Compensated
	if sub.Success && sub.Data != nil {
		resp.Data = sub.Data.Snapshot()
	}
	return resp
}
