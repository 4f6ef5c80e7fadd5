package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amfdata/contact-exchange/internal/dto"
	"github.com/amfdata/contact-exchange/internal/entity"
)

type fakeWorker struct {
	data     map[string]any
	err      error
	payloads []any
}

func (f *fakeWorker) PostJSON(ctx context.Context, path string, payload any, requestID string) (map[string]any, error) {
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func syncContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/admin/contacts/sync", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return authedContext(e, req, "admin")
}

func decodeSyncReport(t *testing.T, rec *httptest.ResponseRecorder) dto.SyncReport {
	t.Helper()
	var resp struct {
		Data dto.SyncReport `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return resp.Data
}

func TestSyncHandler_Sync(t *testing.T) {
	e := echo.New()

	t.Run("empty emails", func(t *testing.T) {
		c, rec := syncContext(e, `{"emails":[]}`)
		handler := NewSyncHandlerWithWorker(&fakeWorker{}, &stubContactsRepo{}, &stubActivityRepo{})
		_ = handler.Sync(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("contact not found", func(t *testing.T) {
		c, rec := syncContext(e, `{"emails":["missing@example.com"]}`)
		handler := NewSyncHandlerWithWorker(&fakeWorker{}, &stubContactsRepo{}, &stubActivityRepo{})
		_ = handler.Sync(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		report := decodeSyncReport(t, rec)
		if len(report.Errors) != 1 || report.Errors[0].Error != "Contact not found in database" {
			t.Fatalf("unexpected errors %+v", report.Errors)
		}
		if report.Summary.Failed != 1 || report.Summary.Total != 1 {
			t.Fatalf("unexpected summary %+v", report.Summary)
		}
	})

	t.Run("recent sync is skipped", func(t *testing.T) {
		recent := time.Now().Add(-2 * time.Hour)
		contacts := &stubContactsRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.Contact, error) {
				return &entity.Contact{Email: email, SyncDate: &recent}, nil
			},
		}
		worker := &fakeWorker{}
		c, rec := syncContext(e, `{"emails":["a@example.com"]}`)
		handler := NewSyncHandlerWithWorker(worker, contacts, &stubActivityRepo{})
		_ = handler.Sync(c)

		report := decodeSyncReport(t, rec)
		if len(report.Results) != 1 || !report.Results[0].Skipped {
			t.Fatalf("expected skipped outcome, got %+v", report.Results)
		}
		if len(worker.payloads) != 0 {
			t.Fatal("worker should not be called for recently synced contacts")
		}
	})

	t.Run("worker failure is per email", func(t *testing.T) {
		contacts := &stubContactsRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.Contact, error) {
				return &entity.Contact{Email: email}, nil
			},
		}
		worker := &fakeWorker{err: errors.New("worker error: upstream busy")}
		c, rec := syncContext(e, `{"emails":["a@example.com","b@example.com"]}`)
		handler := NewSyncHandlerWithWorker(worker, contacts, &stubActivityRepo{})
		_ = handler.Sync(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		report := decodeSyncReport(t, rec)
		if len(report.Errors) != 2 {
			t.Fatalf("expected both emails to fail, got %+v", report.Errors)
		}
	})

	t.Run("verified contact is stamped", func(t *testing.T) {
		var stamped []string
		var storedLinkedIn string
		contacts := &stubContactsRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.Contact, error) {
				return &entity.Contact{Email: email, FirstName: "Ada", LastName: "Lovelace", JobTitle: "CTO", CompanyName: "Acme"}, nil
			},
			updateSyncDate: func(ctx context.Context, email string, syncedAt time.Time, linkedIn string) error {
				stamped = append(stamped, email)
				storedLinkedIn = linkedIn
				return nil
			},
		}
		worker := &fakeWorker{data: map[string]any{
			"emailVerified": true,
			"linkedInUrl":   "https://linkedin.com/in/ada",
		}}
		activity := &stubActivityRepo{}
		c, rec := syncContext(e, `{"emails":["a@example.com"]}`)
		handler := NewSyncHandlerWithWorker(worker, contacts, activity)
		_ = handler.Sync(c)

		report := decodeSyncReport(t, rec)
		if len(report.Results) != 1 || !report.Results[0].Success {
			t.Fatalf("expected success outcome, got %+v", report.Results)
		}
		if len(stamped) != 1 || storedLinkedIn != "https://linkedin.com/in/ada" {
			t.Fatalf("expected sync stamp with profile url, got %v %q", stamped, storedLinkedIn)
		}
		if len(activity.created) != 1 || activity.created[0] != "LinkedIn data synced" {
			t.Fatalf("expected audit entry, got %v", activity.created)
		}

		payload, ok := worker.payloads[0].(map[string]any)
		if !ok {
			t.Fatalf("unexpected payload type %T", worker.payloads[0])
		}
		if payload["company"] != "Acme" || payload["position"] != "CTO" {
			t.Fatalf("unexpected worker payload %+v", payload)
		}
	})

	t.Run("verified without profile", func(t *testing.T) {
		contacts := &stubContactsRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.Contact, error) {
				return &entity.Contact{Email: email}, nil
			},
		}
		worker := &fakeWorker{data: map[string]any{"emailVerified": true}}
		activity := &stubActivityRepo{}
		c, rec := syncContext(e, `{"emails":["a@example.com"]}`)
		handler := NewSyncHandlerWithWorker(worker, contacts, activity)
		_ = handler.Sync(c)

		report := decodeSyncReport(t, rec)
		if len(report.Results) != 1 || report.Results[0].Success {
			t.Fatalf("expected partial outcome, got %+v", report.Results)
		}
		if report.Results[0].Message != "LinkedIn profile not found, but email verified" {
			t.Fatalf("unexpected message %q", report.Results[0].Message)
		}
		if len(activity.created) != 1 || activity.created[0] != "Email verified" {
			t.Fatalf("expected audit entry, got %v", activity.created)
		}
	})

	t.Run("malformed worker response", func(t *testing.T) {
		contacts := &stubContactsRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.Contact, error) {
				return &entity.Contact{Email: email}, nil
			},
		}
		worker := &fakeWorker{data: map[string]any{"unexpected": "shape"}}
		c, rec := syncContext(e, `{"emails":["a@example.com"]}`)
		handler := NewSyncHandlerWithWorker(worker, contacts, &stubActivityRepo{})
		_ = handler.Sync(c)

		report := decodeSyncReport(t, rec)
		if len(report.Errors) != 1 {
			t.Fatalf("expected one error, got %+v", report.Errors)
		}
	})
}
