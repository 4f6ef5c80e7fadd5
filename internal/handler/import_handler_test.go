package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	middleware "github.com/amfdata/contact-exchange/internal/middleware"
	"github.com/amfdata/contact-exchange/internal/service"
)

func newImportHandler(contacts *stubContactsRepo, companies *stubCompaniesRepo, activity *stubActivityRepo) *ImportHandler {
	importer := service.NewImportService(contacts, companies, activity)
	return NewImportHandler(importer)
}

func importContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/admin/contacts/import", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, "3d7b52a0-24f8-4b84-a07f-4a56f9b0c14d")
	c.Set(middleware.ContextKeyUserName, "Jordan Blake")
	c.Set(middleware.ContextKeyUserRole, "admin")
	return c, rec
}

func importRow(email string) string {
	return fmt.Sprintf(`{"firstName":"Ada","lastName":"Lovelace","jobTitle":"CTO","email":%q,"companyName":"Acme"}`, email)
}

func TestImportHandler_Import(t *testing.T) {
	e := echo.New()

	t.Run("invalid payload", func(t *testing.T) {
		c, rec := importContext(e, "{")
		handler := newImportHandler(&stubContactsRepo{}, &stubCompaniesRepo{}, &stubActivityRepo{})
		_ = handler.Import(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("empty rows", func(t *testing.T) {
		c, rec := importContext(e, `{"rows":[]}`)
		handler := newImportHandler(&stubContactsRepo{}, &stubCompaniesRepo{}, &stubActivityRepo{})
		_ = handler.Import(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte("cannot be empty")) {
			t.Fatalf("expected empty-rows message, got %s", rec.Body.String())
		}
	})

	t.Run("duplicate emails rejected with payload", func(t *testing.T) {
		body := fmt.Sprintf(`{"rows":[%s,%s]}`, importRow("dup@example.com"), importRow("dup@example.com"))
		c, rec := importContext(e, body)
		handler := newImportHandler(&stubContactsRepo{}, &stubCompaniesRepo{}, &stubActivityRepo{})
		_ = handler.Import(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var resp struct {
			Message string `json:"message"`
			Data    struct {
				DuplicateEmails []string `json:"duplicateEmails"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Message != "Duplicate emails found in import data" {
			t.Fatalf("unexpected message %q", resp.Message)
		}
		if len(resp.Data.DuplicateEmails) != 1 || resp.Data.DuplicateEmails[0] != "dup@example.com" {
			t.Fatalf("unexpected duplicates %v", resp.Data.DuplicateEmails)
		}
	})

	t.Run("invalid contacts rejected with payload", func(t *testing.T) {
		body := fmt.Sprintf(`{"rows":[{"email":"broken@example.com"},%s]}`, importRow("ok@example.com"))
		c, rec := importContext(e, body)
		handler := newImportHandler(&stubContactsRepo{}, &stubCompaniesRepo{}, &stubActivityRepo{})
		_ = handler.Import(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var resp struct {
			Data struct {
				InvalidContacts []struct {
					Email  string `json:"email"`
					Reason string `json:"reason"`
				} `json:"invalidContacts"`
				TotalInvalid int `json:"totalInvalid"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Data.TotalInvalid != 1 || len(resp.Data.InvalidContacts) != 1 {
			t.Fatalf("unexpected invalid payload %+v", resp.Data)
		}
		if resp.Data.InvalidContacts[0].Email != "broken@example.com" {
			t.Fatalf("unexpected offender %q", resp.Data.InvalidContacts[0].Email)
		}
	})

	t.Run("oversized batch rejected", func(t *testing.T) {
		var rows []string
		for i := 0; i < 10001; i++ {
			rows = append(rows, importRow(fmt.Sprintf("u%d@example.com", i)))
		}
		c, rec := importContext(e, fmt.Sprintf(`{"rows":[%s]}`, strings.Join(rows, ",")))
		handler := newImportHandler(&stubContactsRepo{}, &stubCompaniesRepo{}, &stubActivityRepo{})
		_ = handler.Import(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !bytes.Contains(rec.Body.Bytes(), []byte("Maximum import limit is 10000")) {
			t.Fatalf("expected limit message, got %s", rec.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		activity := &stubActivityRepo{}
		body := fmt.Sprintf(`{"rows":[%s,%s]}`, importRow("a@example.com"), importRow("b@example.com"))
		c, rec := importContext(e, body)
		handler := newImportHandler(&stubContactsRepo{}, &stubCompaniesRepo{}, activity)
		_ = handler.Import(c)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		var resp struct {
			Data struct {
				Imported       int      `json:"imported"`
				ImportedEmails []string `json:"importedEmails"`
				CompaniesTotal int      `json:"companiesTotal"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if resp.Data.Imported != 2 || len(resp.Data.ImportedEmails) != 2 {
			t.Fatalf("unexpected report %+v", resp.Data)
		}
		if resp.Data.CompaniesTotal != 1 {
			t.Fatalf("expected one company committed, got %d", resp.Data.CompaniesTotal)
		}
		if len(activity.created) != 1 || activity.created[0] != "Contacts imported" {
			t.Fatalf("expected audit entry, got %v", activity.created)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		contacts := &stubContactsRepo{
			findExistingEmails: func(ctx context.Context, emails []string) ([]string, error) {
				return nil, fmt.Errorf("db down")
			},
		}
		c, rec := importContext(e, fmt.Sprintf(`{"rows":[%s]}`, importRow("a@example.com")))
		handler := newImportHandler(contacts, &stubCompaniesRepo{}, &stubActivityRepo{})
		_ = handler.Import(c)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
