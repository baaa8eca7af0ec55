package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/anonto42/skillswap/backend/internal/models"
	"github.com/labstack/echo/v4"
)

func newTestContext(method, target, body string, actor *models.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor", actor)
	return c, rec
}

func assertHTTPError(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected HTTP error with status %d, got nil", want)
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d (%v)", want, he.Code, he.Message)
	}
}

func swapTestSetup() (*SwapHandler, *fakeSwapRepo, *models.User, *models.User) {
	users := newFakeUserRepo()
	requester := users.addUser(models.User{Username: "rosa", Email: "rosa@example.com", Name: "Rosa"})
	provider := users.addUser(models.User{Username: "pavel", Email: "pavel@example.com", Name: "Pavel"})
	swaps := newFakeSwapRepo()
	return NewSwapHandler(swaps, users), swaps, requester, provider
}

func createPendingSwap(t *testing.T, h *SwapHandler, requester *models.User, providerID uint) *models.SwapRequest {
	t.Helper()
	body := `{"provider_id": ` + strconv.Itoa(int(providerID)) + `, "skill_offered": "Guitar", "skill_wanted": "Spanish"}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/swaps", body, requester)
	if err := h.CreateSwap(c); err != nil {
		t.Fatalf("CreateSwap failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var swap models.SwapRequest
	if err := json.Unmarshal(rec.Body.Bytes(), &swap); err != nil {
		t.Fatalf("failed to decode created swap: %v", err)
	}
	return &swap
}

func transitionContext(swapID uint, status string, actor *models.User) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newTestContext(http.MethodPut, "/api/v1/swaps/:id/status", `{"status": "`+status+`"}`, actor)
	c.SetPath("/api/v1/swaps/:id/status")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(swapID)))
	return c, rec
}

func deleteContext(swapID uint, actor *models.User) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newTestContext(http.MethodDelete, "/api/v1/swaps/:id", "", actor)
	c.SetPath("/api/v1/swaps/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(swapID)))
	return c, rec
}

func TestCreateSwapStartsPending(t *testing.T) {
	h, swaps, requester, provider := swapTestSetup()

	createPendingSwap(t, h, requester, provider.ID)

	swap, err := swaps.GetSwapRequestByID(1)
	if err != nil {
		t.Fatalf("swap not persisted: %v", err)
	}
	if swap.Status != models.SwapStatusPending {
		t.Errorf("expected status pending, got %q", swap.Status)
	}
	if !swap.CreatedAt.Equal(swap.UpdatedAt) {
		t.Errorf("expected created_at == updated_at on creation, got %v / %v", swap.CreatedAt, swap.UpdatedAt)
	}
	if swap.RequesterID != requester.ID || swap.ProviderID != provider.ID {
		t.Errorf("unexpected parties: requester %d provider %d", swap.RequesterID, swap.ProviderID)
	}
}

func TestCreateSwapRejectsBlankSkills(t *testing.T) {
	h, _, requester, provider := swapTestSetup()

	body := `{"provider_id": ` + strconv.Itoa(int(provider.ID)) + `, "skill_offered": "   ", "skill_wanted": "Spanish"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/swaps", body, requester)
	assertHTTPError(t, h.CreateSwap(c), http.StatusBadRequest)
}

func TestCreateSwapRejectsSelfTarget(t *testing.T) {
	h, _, requester, _ := swapTestSetup()

	body := `{"provider_id": ` + strconv.Itoa(int(requester.ID)) + `, "skill_offered": "Guitar", "skill_wanted": "Spanish"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/swaps", body, requester)
	assertHTTPError(t, h.CreateSwap(c), http.StatusBadRequest)
}

func TestCreateSwapUnknownProvider(t *testing.T) {
	h, _, requester, _ := swapTestSetup()

	c, _ := newTestContext(http.MethodPost, "/api/v1/swaps", `{"provider_id": 99, "skill_offered": "Guitar", "skill_wanted": "Spanish"}`, requester)
	assertHTTPError(t, h.CreateSwap(c), http.StatusNotFound)
}

func TestCreateSwapBannedProvider(t *testing.T) {
	users := newFakeUserRepo()
	requester := users.addUser(models.User{Username: "rosa"})
	banned := users.addUser(models.User{Username: "troll", IsBanned: true})
	h := NewSwapHandler(newFakeSwapRepo(), users)

	body := `{"provider_id": ` + strconv.Itoa(int(banned.ID)) + `, "skill_offered": "Guitar", "skill_wanted": "Spanish"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/swaps", body, requester)
	assertHTTPError(t, h.CreateSwap(c), http.StatusNotFound)
}

func TestCreateSwapAllowsDuplicates(t *testing.T) {
	h, swaps, requester, provider := swapTestSetup()

	for i := 0; i < 2; i++ {
		body := `{"provider_id": ` + strconv.Itoa(int(provider.ID)) + `, "skill_offered": "Guitar", "skill_wanted": "Spanish"}`
		c, rec := newTestContext(http.MethodPost, "/api/v1/swaps", body, requester)
		if err := h.CreateSwap(c); err != nil {
			t.Fatalf("duplicate create %d failed: %v", i, err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("duplicate create %d: expected 201, got %d", i, rec.Code)
		}
	}

	listed, err := swaps.GetUserSwaps(requester.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed.Sent) != 2 {
		t.Errorf("expected 2 sent requests, got %d", len(listed.Sent))
	}
}

func TestGetMySwapsSplitAndOrder(t *testing.T) {
	users := newFakeUserRepo()
	alice := users.addUser(models.User{Username: "alice"})
	bob := users.addUser(models.User{Username: "bob"})
	swaps := newFakeSwapRepo()
	h := NewSwapHandler(swaps, users)

	// alice -> bob twice, bob -> alice once
	for i := 0; i < 2; i++ {
		createPendingSwap(t, h, alice, bob.ID)
	}
	body := `{"provider_id": ` + strconv.Itoa(int(alice.ID)) + `, "skill_offered": "Chess", "skill_wanted": "Go"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/swaps", body, bob)
	if err := h.CreateSwap(c); err != nil {
		t.Fatalf("CreateSwap failed: %v", err)
	}

	listed, err := swaps.GetUserSwaps(alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed.Sent) != 2 || len(listed.Received) != 1 {
		t.Fatalf("expected 2 sent / 1 received, got %d / %d", len(listed.Sent), len(listed.Received))
	}
	if listed.Sent[0].CreatedAt.Before(listed.Sent[1].CreatedAt) {
		t.Error("sent requests not ordered newest first")
	}
	for _, sent := range listed.Sent {
		if sent.RequesterID != alice.ID {
			t.Errorf("sent list contains request from user %d", sent.RequesterID)
		}
	}
}

func TestTransitionByNonProviderForbidden(t *testing.T) {
	h, swaps, requester, provider := swapTestSetup()
	swap := createPendingSwap(t, h, requester, provider.ID)

	// The requester cannot accept their own request
	c, _ := transitionContext(swap.ID, models.SwapStatusAccepted, requester)
	assertHTTPError(t, h.UpdateSwapStatus(c), http.StatusForbidden)

	// Still forbidden for a non-provider after the request turns terminal
	if _, err := swaps.UpdateStatus(swap.ID, provider.ID, models.SwapStatusAccepted); err != nil {
		t.Fatal(err)
	}
	c, _ = transitionContext(swap.ID, models.SwapStatusRejected, requester)
	assertHTTPError(t, h.UpdateSwapStatus(c), http.StatusForbidden)
}

func TestTransitionHappyPathThenConflict(t *testing.T) {
	h, swaps, requester, provider := swapTestSetup()
	swap := createPendingSwap(t, h, requester, provider.ID)

	c, rec := transitionContext(swap.ID, models.SwapStatusAccepted, provider)
	if err := h.UpdateSwapStatus(c); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	updated, err := swaps.GetSwapRequestByID(swap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.SwapStatusAccepted {
		t.Fatalf("expected accepted, got %q", updated.Status)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("expected updated_at to advance on transition")
	}

	// A second transition on a terminal request is rejected, not idempotent
	c, _ = transitionContext(swap.ID, models.SwapStatusRejected, provider)
	assertHTTPError(t, h.UpdateSwapStatus(c), http.StatusConflict)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	h, _, requester, provider := swapTestSetup()
	swap := createPendingSwap(t, h, requester, provider.ID)

	c, _ := transitionContext(swap.ID, "canceled", provider)
	assertHTTPError(t, h.UpdateSwapStatus(c), http.StatusBadRequest)
}

func TestTransitionMissingSwap(t *testing.T) {
	h, _, _, provider := swapTestSetup()

	c, _ := transitionContext(42, models.SwapStatusAccepted, provider)
	assertHTTPError(t, h.UpdateSwapStatus(c), http.StatusNotFound)
}

func TestDeleteSwapAuthorization(t *testing.T) {
	h, swaps, requester, provider := swapTestSetup()
	swap := createPendingSwap(t, h, requester, provider.ID)

	// The provider cannot delete a request sent to them
	c, _ := deleteContext(swap.ID, provider)
	assertHTTPError(t, h.DeleteSwap(c), http.StatusForbidden)

	// The requester can, while pending
	c, rec := deleteContext(swap.ID, requester)
	if err := h.DeleteSwap(c); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	// Gone for both parties
	for _, userID := range []uint{requester.ID, provider.ID} {
		listed, err := swaps.GetUserSwaps(userID)
		if err != nil {
			t.Fatal(err)
		}
		if len(listed.Sent)+len(listed.Received) != 0 {
			t.Errorf("user %d still sees the deleted request", userID)
		}
	}
}

func TestDeleteSwapAfterAcceptConflicts(t *testing.T) {
	h, swaps, requester, provider := swapTestSetup()
	swap := createPendingSwap(t, h, requester, provider.ID)

	if _, err := swaps.UpdateStatus(swap.ID, provider.ID, models.SwapStatusAccepted); err != nil {
		t.Fatal(err)
	}

	c, _ := deleteContext(swap.ID, requester)
	assertHTTPError(t, h.DeleteSwap(c), http.StatusConflict)
}

func TestConcurrentTransitionsSingleWinner(t *testing.T) {
	h, swaps, requester, provider := swapTestSetup()
	swap := createPendingSwap(t, h, requester, provider.ID)

	statuses := []string{models.SwapStatusAccepted, models.SwapStatusRejected}
	errs := make([]error, len(statuses))
	var wg sync.WaitGroup
	for i, status := range statuses {
		wg.Add(1)
		go func(i int, status string) {
			defer wg.Done()
			c, _ := transitionContext(swap.ID, status, provider)
			errs[i] = h.UpdateSwapStatus(c)
		}(i, status)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusConflict {
			t.Fatalf("loser should observe 409, got %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winning transition, got %d", winners)
	}

	final, err := swaps.GetSwapRequestByID(swap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Status != models.SwapStatusAccepted && final.Status != models.SwapStatusRejected {
		t.Fatalf("expected a terminal status, got %q", final.Status)
	}
}
