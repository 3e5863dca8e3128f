package html_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-surveyform/pkg/form"
	"github.com/goliatone/go-surveyform/pkg/renderers/html"
	"github.com/goliatone/go-surveyform/pkg/survey"
	"github.com/goliatone/go-surveyform/pkg/validation"
)

func newHandler(t *testing.T, options ...html.HandlerOption) *html.Handler {
	t.Helper()
	s := survey.Survey{Fields: []survey.Field{
		{ID: 1, Question: "Name", Type: survey.FieldTypeString, Required: true, PageNo: 1},
		{ID: 2, Question: "Age", Type: survey.FieldTypeNumber, MinVal: floatPtr(18), PageNo: 2},
	}}
	h, err := html.NewHandler(s, newRenderer(t), options...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

func post(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetRendersFirstPage(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), "Page 1 of 2", `name="Name"`)
}

func TestHandler_NextCarriesAnswers(t *testing.T) {
	rec := post(newHandler(t), url.Values{"_page": {"1"}, "_action": {"next"}, "Name": {"Ada"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), "Page 2 of 2", `<input type="hidden" name="Name" value="Ada">`)
}

func TestHandler_InvalidSubmitRerendersPage(t *testing.T) {
	rec := post(newHandler(t), url.Values{"_page": {"2"}, "_action": {"submit"}, "Name": {"Ada"}, "Age": {"12"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), "Page 2 of 2", "Number must be greater than or equal to 18")
}

func TestHandler_InvalidSubmitReportsIssues(t *testing.T) {
	var reported validation.Issues
	calls := 0
	h := newHandler(t, html.WithFailureFunc(func(_ context.Context, issues validation.Issues) {
		calls++
		reported = issues
	}))

	rec := post(h, url.Values{"_page": {"2"}, "_action": {"submit"}, "Name": {"Ada"}, "Age": {"12"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("expected one failure callback, got %d", calls)
	}
	byPath := reported.ByPath()
	if len(byPath) != 1 || len(byPath["Age"]) != 1 {
		t.Fatalf("expected a single Age issue, got %v", byPath)
	}
	if reported.For("Age")[0].Code != validation.CodeTooSmall {
		t.Fatalf("expected too_small, got %s", reported.For("Age")[0].Code)
	}

	post(h, url.Values{"_page": {"2"}, "_action": {"submit"}, "Name": {"Ada"}, "Age": {"30"}})
	if calls != 1 {
		t.Fatalf("failure callback must not fire on a valid submit")
	}
}

func TestHandler_WhitespaceAnswerSatisfiesRequired(t *testing.T) {
	rec := post(newHandler(t), url.Values{"_page": {"1"}, "_action": {"next"}, "Name": {"   "}})

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	mustContain(t, rec.Body.String(), "Page 2 of 2", `<input type="hidden" name="Name" value="   ">`)
}

func TestHandler_ValidSubmitReturnsResponse(t *testing.T) {
	var received form.Response
	h := newHandler(t, html.WithSubmitFunc(func(_ context.Context, resp form.Response) error {
		received = resp
		return nil
	}))

	rec := post(h, url.Values{"_page": {"2"}, "_action": {"submit"}, "Name": {"Ada"}, "Age": {"30"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}

	var resp form.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Answers) != 2 || resp.Answers[1].Answer != 30.0 {
		t.Fatalf("unexpected answers %+v", resp.Answers)
	}
	if received.ID != resp.ID {
		t.Fatalf("submit callback did not receive the response")
	}
}

func TestHandler_SubmitFromEarlierPageIsIgnored(t *testing.T) {
	rec := post(newHandler(t), url.Values{"_page": {"1"}, "_action": {"submit"}, "Name": {"Ada"}})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict for early submit, got %d", rec.Code)
	}
}

func TestHandler_RejectsOtherMethods(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}
