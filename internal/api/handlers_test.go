package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexta-backend-go/internal/core"
	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/middleware"
	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/cache"
	"nexta-backend-go/pkg/database"
	"nexta-backend-go/pkg/objectstore"
	"nexta-backend-go/pkg/overpass"
)

type fakeVerifier struct{}

// VerifyIDToken accepts tokens of the form "tok-<uid>".
func (fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := strings.CutPrefix(idToken, "tok-")
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &auth.Token{UID: uid, Claims: map[string]interface{}{"email": uid + "@example.com", "name": strings.ToUpper(uid)}}, nil
}

type stubPlaces struct{}

func (stubPlaces) Around(context.Context, float64, float64, int, []string) ([]overpass.Element, error) {
	return []overpass.Element{{Type: "node", ID: 7, Lat: 1, Lon: 2, Tags: map[string]string{"amenity": "clinic"}}}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	store := database.NewMemoryStore()
	objects := objectstore.NewMemoryStore("/objects/")
	urls := core.NewURLResolver(objects, cache.NewMemoryCache(), time.Minute, logger)
	userRepo := db.NewUserRepository(store)
	profileRepo := db.NewProfileRepository(store)
	jobRepo := db.NewJobRepository(store)
	audit := core.NewAuditService(db.NewAuditRepository(store))
	events := core.NewLogPublisher(logger)

	services := Services{
		Users:        core.NewUserService(userRepo, audit, logger),
		Profiles:     core.NewProfileService(userRepo, profileRepo, objects, urls, audit, logger),
		Jobs:         core.NewJobService(userRepo, profileRepo, jobRepo, audit, logger),
		Applications: core.NewApplicationService(userRepo, profileRepo, db.NewApplicationRepository(store), urls, audit, events, logger),
		Cart:         core.NewCartService(userRepo, profileRepo, db.NewCartRepository(store), urls, logger),
		Bookings:     core.NewBookingService(userRepo, db.NewBookingRepository(store), audit, events, logger),
		Catalog:      core.NewCatalogService(userRepo, profileRepo, jobRepo, urls, logger),
		Places:       core.NewPlacesService(stubPlaces{}, nil, logger),
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware(logger))
	NewHandlers(services, middleware.NewAuthMiddleware(fakeVerifier{}, logger), objects, logger).RegisterRoutes(router)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path, uid string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer tok-"+uid)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body %s", w.Code, want, w.Body.String())
	}
}

func TestHealthAndAuth(t *testing.T) {
	router := newTestRouter(t)
	expectStatus(t, do(t, router, http.MethodGet, "/health", "", nil), http.StatusOK)
	expectStatus(t, do(t, router, http.MethodGet, "/api/v1/users/me", "", nil), http.StatusUnauthorized)
	expectStatus(t, do(t, router, http.MethodGet, "/api/v1/users/me", "nobody", nil), http.StatusNotFound)
}

func TestInitializeUser(t *testing.T) {
	router := newTestRouter(t)

	expectStatus(t, do(t, router, http.MethodPost, "/api/v1/users/initialize", "u1", gin.H{"role": "Admin"}), http.StatusBadRequest)

	w := do(t, router, http.MethodPost, "/api/v1/users/initialize", "u1", gin.H{"role": "User"})
	expectStatus(t, w, http.StatusCreated)
	var resp InitializeUserResponse
	decode(t, w, &resp)
	if !resp.Created || resp.User.Email != "u1@example.com" || resp.User.Name != "U1" {
		t.Errorf("initialize response = %+v", resp.User)
	}

	w = do(t, router, http.MethodPost, "/api/v1/users/initialize", "u1", gin.H{"role": "Company"})
	expectStatus(t, w, http.StatusOK)
	decode(t, w, &resp)
	if resp.Created || resp.User.Role != models.RoleUser {
		t.Errorf("second initialize = created %v role %s", resp.Created, resp.User.Role)
	}
}

func TestApplicationFlow(t *testing.T) {
	router := newTestRouter(t)
	expectStatus(t, do(t, router, http.MethodPost, "/api/v1/users/initialize", "c1", gin.H{"role": "Company"}), http.StatusCreated)
	expectStatus(t, do(t, router, http.MethodPost, "/api/v1/users/initialize", "u1", gin.H{"role": "User"}), http.StatusCreated)
	expectStatus(t, do(t, router, http.MethodPost, "/api/v1/profiles/company", "c1", gin.H{"companyName": "Acme"}), http.StatusCreated)

	w := do(t, router, http.MethodPost, "/api/v1/jobs", "c1", gin.H{"title": "Backend Engineer", "skills": "Go, SQL"})
	expectStatus(t, w, http.StatusCreated)
	var job models.Job
	decode(t, w, &job)
	if len(job.Skills) != 2 || job.CompanyName != "Acme" {
		t.Fatalf("created job = %+v", job)
	}

	expectStatus(t, do(t, router, http.MethodPost, "/api/v1/jobs", "u1", gin.H{"title": "x"}), http.StatusForbidden)

	apply := "/api/v1/jobs/c1/" + job.ID + "/apply"
	w = do(t, router, http.MethodPost, apply, "u1", nil)
	expectStatus(t, w, http.StatusCreated)
	var app models.Application
	decode(t, w, &app)
	expectStatus(t, do(t, router, http.MethodPost, apply, "u1", nil), http.StatusConflict)

	w = do(t, router, http.MethodGet, "/api/v1/applications/received", "c1", nil)
	expectStatus(t, w, http.StatusOK)
	var received []models.ApplicationView
	decode(t, w, &received)
	if len(received) != 1 || received[0].ApplicationID != app.ApplicationID {
		t.Fatalf("received = %+v", received)
	}

	decision := "/api/v1/applications/received/" + app.ApplicationID + "/decision"
	expectStatus(t, do(t, router, http.MethodPost, decision, "c1", gin.H{"status": "Denied"}), http.StatusOK)
	expectStatus(t, do(t, router, http.MethodPost, decision, "c1", gin.H{"status": "Approved"}), http.StatusConflict)

	w = do(t, router, http.MethodGet, "/api/v1/applications/sent?q=backend", "u1", nil)
	expectStatus(t, w, http.StatusOK)
	var sent []models.ApplicationView
	decode(t, w, &sent)
	if len(sent) != 1 || sent[0].Status != models.ApplicationDenied {
		t.Errorf("sent = %+v", sent)
	}

	w = do(t, router, http.MethodGet, "/api/v1/jobs?q=sql", "u1", nil)
	expectStatus(t, w, http.StatusOK)
	var jobs []models.Job
	decode(t, w, &jobs)
	if len(jobs) != 1 {
		t.Errorf("catalog jobs = %d, want 1", len(jobs))
	}
}

func TestCartCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)
	for uid, role := range map[string]string{"r1": "Company", "u1": "User"} {
		expectStatus(t, do(t, router, http.MethodPost, "/api/v1/users/initialize", uid, gin.H{"role": role}), http.StatusCreated)
	}
	checkout := gin.H{"startDate": "2024-06-01T00:00:00Z", "endDate": "2024-06-08T00:00:00Z", "termsAgreed": true}

	expectStatus(t, do(t, router, http.MethodPost, "/api/v1/checkout", "r1", checkout), http.StatusBadRequest)
	expectStatus(t, do(t, router, http.MethodPut, "/api/v1/cart/u1", "r1", nil), http.StatusNoContent)
	expectStatus(t, do(t, router, http.MethodPut, "/api/v1/cart/u1", "r1", nil), http.StatusNoContent)
	expectStatus(t, do(t, router, http.MethodPut, "/api/v1/cart/r1", "r1", nil), http.StatusForbidden)

	w := do(t, router, http.MethodPost, "/api/v1/checkout", "r1", checkout)
	expectStatus(t, w, http.StatusCreated)
	var booking models.Booking
	decode(t, w, &booking)
	if len(booking.CartItems) != 1 {
		t.Fatalf("booking lines = %d, want 1", len(booking.CartItems))
	}
	line := booking.CartItems[0]

	decide := "/api/v1/booked-requests/" + line.ID + "/decision"
	body := gin.H{"requesterId": "r1", "bookingId": booking.ID, "action": "Rejected"}
	expectStatus(t, do(t, router, http.MethodPost, decide, "u1", body), http.StatusOK)
	expectStatus(t, do(t, router, http.MethodPost, decide, "u1", body), http.StatusConflict)

	w = do(t, router, http.MethodGet, "/api/v1/booked-requests", "u1", nil)
	expectStatus(t, w, http.StatusOK)
	var reqs []models.BookedRequestView
	decode(t, w, &reqs)
	if len(reqs) != 1 || reqs[0].Status != models.BookingRejected || reqs[0].RequesterName != "R1" {
		t.Errorf("booked requests = %+v", reqs)
	}
}

func TestPeopleFilterValidation(t *testing.T) {
	router := newTestRouter(t)
	expectStatus(t, do(t, router, http.MethodGet, "/api/v1/people?minFee=cheap", "u1", nil), http.StatusBadRequest)
	expectStatus(t, do(t, router, http.MethodGet, "/api/v1/people?sort=rating", "u1", nil), http.StatusBadRequest)
	for _, bound := range []string{"minFee=NaN", "maxFee=Inf", "minExperience=-Inf", "maxExperience=nan"} {
		expectStatus(t, do(t, router, http.MethodGet, "/api/v1/people?"+bound, "u1", nil), http.StatusBadRequest)
	}

	w := do(t, router, http.MethodGet, "/api/v1/people?minFee=10&sort=fee", "u1", nil)
	expectStatus(t, w, http.StatusOK)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty catalog body = %s, want []", w.Body.String())
	}
}

func TestUploadAndServeObject(t *testing.T) {
	router := newTestRouter(t)
	expectStatus(t, do(t, router, http.MethodPost, "/api/v1/users/initialize", "u1", gin.H{"role": "User"}), http.StatusCreated)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="me.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write([]byte("PNGDATA"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads?kind=photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer tok-u1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	expectStatus(t, w, http.StatusCreated)
	var up UploadResponse
	decode(t, w, &up)
	if !strings.HasPrefix(up.Ref, "profiles/") || !strings.HasSuffix(up.Ref, "-me.png") {
		t.Fatalf("ref = %q", up.Ref)
	}

	w = do(t, router, http.MethodGet, "/objects/"+up.Ref, "", nil)
	expectStatus(t, w, http.StatusOK)
	if w.Body.String() != "PNGDATA" || w.Header().Get("Content-Type") != "image/png" {
		t.Errorf("object = %q (%s)", w.Body.String(), w.Header().Get("Content-Type"))
	}
	expectStatus(t, do(t, router, http.MethodGet, "/objects/profiles/missing", "", nil), http.StatusNotFound)

	expectStatus(t, do(t, router, http.MethodPost, "/api/v1/profiles/freelancer", "u1",
		gin.H{"name": "Ada", "email": "ada@example.com", "photoFile": up.Ref}), http.StatusCreated)
	w = do(t, router, http.MethodGet, "/api/v1/profiles/freelancer/u1", "u2", nil)
	expectStatus(t, w, http.StatusOK)
	var profile models.FreelancerProfile
	decode(t, w, &profile)
	if profile.PhotoURL == "" {
		t.Error("photoURL not resolved")
	}
	expectStatus(t, do(t, router, http.MethodGet, "/api/v1/profiles/freelancer/me/resume", "u1", nil), http.StatusNotFound)
	expectStatus(t, do(t, router, http.MethodGet, "/api/v1/profiles/company/me", "u1", nil), http.StatusNotFound)
}

func TestNearbyPlaces(t *testing.T) {
	router := newTestRouter(t)
	expectStatus(t, do(t, router, http.MethodGet, "/api/v1/places/nearby?lon=2", "u1", nil), http.StatusBadRequest)
	expectStatus(t, do(t, router, http.MethodGet, "/api/v1/places/nearby?lat=NaN&lon=NaN", "u1", nil), http.StatusBadRequest)

	w := do(t, router, http.MethodGet, "/api/v1/places/nearby?lat=1&lon=2&amenity=clinic", "u1", nil)
	expectStatus(t, w, http.StatusOK)
	var got map[string][]models.Place
	decode(t, w, &got)
	if len(got["clinic"]) != 1 || got["clinic"][0].ID != 7 {
		t.Errorf("places = %+v", got)
	}
}
