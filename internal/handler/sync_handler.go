package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amfdata/contact-exchange/internal/dto"
	middleware "github.com/amfdata/contact-exchange/internal/middleware"
	"github.com/amfdata/contact-exchange/internal/repository"
)

// resyncWindow is the minimum gap between verification runs for one contact.
const resyncWindow = 24 * time.Hour

// SyncHandler posts contact verification requests to the LinkedIn worker and
// stamps the contacts that came back verified.
type SyncHandler struct {
	worker   WorkerPoster
	contacts repository.ContactsRepository
	activity repository.ActivityRepository
	now      func() time.Time
}

// NewSyncHandler constructs a sync handler backed by an HTTP client.
// If `client == nil`, it automatically creates an ID-token client for Cloud Run → Cloud Run calls.
func NewSyncHandler(client *http.Client, workerBaseURL string, contacts repository.ContactsRepository, activity repository.ActivityRepository) *SyncHandler {
	return &SyncHandler{
		worker:   NewWorkerClient(client, workerBaseURL),
		contacts: contacts,
		activity: activity,
		now:      time.Now,
	}
}

// NewSyncHandlerWithWorker allows injecting a custom worker client (useful for tests).
func NewSyncHandlerWithWorker(worker WorkerPoster, contacts repository.ContactsRepository, activity repository.ActivityRepository) *SyncHandler {
	return &SyncHandler{worker: worker, contacts: contacts, activity: activity, now: time.Now}
}

// Sync handles POST /admin/contacts/sync requests. Each listed email is
// processed independently; one failing contact never aborts the rest.
func (h *SyncHandler) Sync(c echo.Context) error {
	var req dto.SyncRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if len(req.Emails) == 0 {
		return Error(c, http.StatusBadRequest, "Invalid input: 'emails' must be a non-empty array")
	}

	ctx := c.Request().Context()
	requestID := middleware.RequestIDFromContext(c)
	actor := middleware.ActorFromContext(c)

	report := dto.SyncReport{
		Results: []dto.SyncOutcome{},
		Errors:  []dto.SyncError{},
	}

	for _, email := range req.Emails {
		contact, err := h.contacts.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrContactNotFound) {
				report.Errors = append(report.Errors, dto.SyncError{Email: email, Error: "Contact not found in database"})
			} else {
				report.Errors = append(report.Errors, dto.SyncError{Email: email, Error: err.Error()})
			}
			continue
		}

		if contact.SyncDate != nil {
			elapsed := h.now().Sub(*contact.SyncDate)
			if elapsed < resyncWindow {
				next := contact.SyncDate.Add(resyncWindow)
				report.Results = append(report.Results, dto.SyncOutcome{
					Email:   email,
					Success: false,
					Skipped: true,
					Message: fmt.Sprintf("Please sync tomorrow. Last synced on %s. Next sync available after %s",
						contact.SyncDate.Format(time.RFC3339), next.Format(time.RFC3339)),
				})
				continue
			}
		}

		payload := map[string]any{
			"first_name": contact.FirstName,
			"last_name":  contact.LastName,
			"city":       contact.City,
			"position":   contact.JobTitle,
			"company":    contact.CompanyName,
			"email":      contact.Email,
		}
		data, err := h.worker.PostJSON(ctx, "/sync-linkedin", payload, requestID)
		if err != nil {
			report.Errors = append(report.Errors, dto.SyncError{Email: email, Error: err.Error()})
			continue
		}

		verified, ok := data["emailVerified"].(bool)
		if !ok {
			report.Errors = append(report.Errors, dto.SyncError{Email: email, Error: "Invalid response from verification worker"})
			continue
		}
		linkedInURL, _ := data["linkedInUrl"].(string)

		if err := h.contacts.UpdateSyncDate(ctx, email, h.now(), linkedInURL); err != nil {
			report.Errors = append(report.Errors, dto.SyncError{Email: email, Error: err.Error()})
			continue
		}

		outcome := dto.SyncOutcome{Email: email, Success: linkedInURL != ""}
		if !outcome.Success {
			if verified {
				outcome.Message = "LinkedIn profile not found, but email verified"
			} else {
				outcome.Message = "LinkedIn profile not found"
			}
		}
		report.Results = append(report.Results, outcome)

		action := "Email verified"
		details := fmt.Sprintf("Email verified for contact %s by %s", email, actor.Name)
		if outcome.Success {
			action = "LinkedIn data synced"
			details = fmt.Sprintf("LinkedIn data synced for contact %s by %s", email, actor.Name)
		}
		if err := h.activity.Create(ctx, action, details, actor.ID, actor.Name); err != nil {
			// audit failures never surface to the caller
			log.Printf("sync: create activity log failed email=%s error=%v", email, err)
		}
	}

	report.Summary = dto.SyncSummary{
		Total:      len(req.Emails),
		Successful: len(report.Results),
		Failed:     len(report.Errors),
	}
	return Success(c, http.StatusOK, fmt.Sprintf("Processed %d contacts", len(req.Emails)), report)
}
