package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api/", srv.Client())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, srv
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("not-a-url", http.DefaultClient); err == nil {
		t.Error("expected error for relative base URL")
	}
}

func TestBrowseNomineesQueryOmitsEmptyFilters(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(EmployeePage{Count: 0})
	})

	_, err := c.BrowseNominees(context.Background(), BrowseFilter{
		Search: "jane",
		Dept:   "",
		Role:   "",
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := gotQuery.Get("page"); got != "1" {
		t.Errorf("page should default to 1, got %q", got)
	}
	if got := gotQuery.Get("search"); got != "jane" {
		t.Errorf("search = %q, want jane", got)
	}
	for _, absent := range []string{"dept", "role", "location"} {
		if gotQuery.Has(absent) {
			t.Errorf("empty filter %q must be omitted, got %q", absent, gotQuery.Get(absent))
		}
	}
}

func TestBrowseNomineesExplicitPage(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(EmployeePage{
			Count:   22,
			Results: []Employee{{ID: 16, Username: "page2-first"}},
		})
	})

	page, err := c.BrowseNominees(context.Background(), BrowseFilter{Page: 2, Dept: "Engineering"})
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery.Get("page") != "2" {
		t.Errorf("page = %q, want 2", gotQuery.Get("page"))
	}
	if gotQuery.Get("dept") != "Engineering" {
		t.Errorf("dept = %q, want Engineering", gotQuery.Get("dept"))
	}
	if page.Count != 22 {
		t.Errorf("count = %d, want 22", page.Count)
	}
}

func TestReviewNominationsFilterParam(t *testing.T) {
	var gotFilter string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("filter")
		json.NewEncoder(w).Encode([]Nomination{})
	})

	if _, err := c.ReviewNominations(context.Background(), FilterCommitteePending); err != nil {
		t.Fatal(err)
	}
	if gotFilter != "committee_pending" {
		t.Errorf("filter = %q, want committee_pending", gotFilter)
	}
}

func TestReviewNominationReturnsMessage(t *testing.T) {
	var gotAction ReviewAction
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotAction)
		json.NewEncoder(w).Encode(map[string]string{"message": "Nomination approved for jdoe"})
	})

	msg, err := c.ReviewNomination(context.Background(), ReviewAction{NominationID: 7, Action: "APPROVE"})
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Nomination approved for jdoe" {
		t.Errorf("message = %q", msg)
	}
	if gotAction.NominationID != 7 || gotAction.Action != "APPROVE" {
		t.Errorf("payload = %+v", gotAction)
	}
}

func TestBusinessRuleErrorSurfacesVerbatim(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "You already voted."})
	})

	err := c.CastVote(context.Background(), 3)
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !apiErr.BusinessRule || apiErr.Message != "You already voted." {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestMethodPerEndpoint(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var got call
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = call{r.Method, r.URL.Path}
		w.Write([]byte(`{}`))
	})

	ctx := context.Background()
	tests := []struct {
		name string
		do   func() error
		want call
	}{
		{"submit", func() error { return c.SubmitNomination(ctx, NominationRequest{}) }, call{"POST", "/api/nominate/action/"}},
		{"update", func() error { return c.UpdateNomination(ctx, NominationRequest{}) }, call{"PUT", "/api/nominate/action/"}},
		{"withdraw", func() error { return c.WithdrawNomination(ctx) }, call{"DELETE", "/api/nominate/action/"}},
		{"mark read", func() error { return c.MarkNotificationRead(ctx, 12) }, call{"POST", "/api/notifications/12/read/"}},
		{"profile patch", func() error { _, err := c.UpdateProfile(ctx, ProfileUpdate{Location: "Berlin"}); return err }, call{"PATCH", "/api/me/"}},
		{"timeline set", func() error { return c.SetTimeline(ctx, Timeline{}) }, call{"POST", "/api/admin/timeline/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.do(); err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlobExportUsesContentDisposition(t *testing.T) {
	payload := []byte("PK\x03\x04 spreadsheet bytes")
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="admin_report.xlsx"`)
		w.Write(payload)
	})

	export, err := c.AdminReport(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if export.Filename != "admin_report.xlsx" {
		t.Errorf("filename = %q", export.Filename)
	}
	if string(export.Data) != string(payload) {
		t.Error("export bytes do not match")
	}
}

func TestBlobExportFallbackFilename(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	})

	export, err := c.ExportStarAwards(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if export.Filename != "star_award_export.xlsx" {
		t.Errorf("filename = %q", export.Filename)
	}
}

func TestUploadEmployeesMultipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "staff.xlsx" {
			t.Errorf("filename = %q", header.Filename)
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "12 employees imported"})
	})

	msg, err := c.UploadEmployees(context.Background(), "staff.xlsx", strings.NewReader("fake xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	if msg != "12 employees imported" {
		t.Errorf("message = %q", msg)
	}
}

func TestRefreshURL(t *testing.T) {
	c, err := New("https://awards.example.com/api/", http.DefaultClient)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.RefreshURL(); got != "https://awards.example.com/api/token/refresh/" {
		t.Errorf("RefreshURL = %q", got)
	}
}
