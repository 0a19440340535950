package initialize

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jewel-lending/backend/app/models"
	"jewel-lending/backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *httptest.Server) {
	t.Helper()
	return newTestAppWith(t, nil)
}

func newTestAppWith(t *testing.T, tweak func(*config.Config)) (*App, *httptest.Server) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	dir := t.TempDir()
	cfg.DB.Path = filepath.Join(dir, "jewel.db")
	cfg.Upload.Dir = filepath.Join(dir, "uploads")
	cfg.Redis.Addr = ""
	if tweak != nil {
		tweak(cfg)
	}

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return app, srv
}

type browser struct {
	t    *testing.T
	base string
	c    *http.Client
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, base: srv.URL, c: &http.Client{
		Jar:           jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}}
}

func (b *browser) do(req *http.Request) (int, string, string) {
	b.t.Helper()
	resp, err := b.c.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp.StatusCode, resp.Header.Get("Location"), string(body)
}

func (b *browser) get(path string) (int, string, string) {
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values) (int, string, string) {
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postMultipart(path string, fields map[string]string, fileName string, file []byte) (int, string, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(b.t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		require.NoError(b.t, err)
		_, err = fw.Write(file)
		require.NoError(b.t, err)
	}
	require.NoError(b.t, mw.Close())
	req, err := http.NewRequest(http.MethodPost, b.base+path, &body)
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

func (b *browser) login(email, password string) {
	b.t.Helper()
	code, loc, _ := b.post("/login", url.Values{"email": {email}, "password": {password}})
	require.Equal(b.t, http.StatusFound, code)
	require.Equal(b.t, "/", loc)
}

func formTime(t time.Time) string { return t.Format("2006-01-02T15:04") }

func onlyJewel(t *testing.T, app *App) models.Jewel {
	t.Helper()
	all, err := app.Jewels.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	return all[0]
}

func onlyRequest(t *testing.T, app *App) models.BorrowRequest {
	t.Helper()
	all, err := app.Lending.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	return all[0]
}

func TestLendingFlowOverHTTP(t *testing.T) {
	app, srv := newTestApp(t)

	admin := newBrowser(t, srv)
	admin.login("admin@example.com", "password")
	code, loc, _ := admin.postMultipart("/add_jewel", map[string]string{
		"name": "Ruby Ring", "category": "rings", "description": "red",
		"price_per_hour": "10", "fine_per_hour": "2", "count": "1",
	}, "ruby ring.png", []byte("png"))
	require.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/admin/manage", loc)
	jewel := onlyJewel(t, app)
	require.NotEmpty(t, jewel.Image())

	code, _, body := admin.get("/uploaded_file/" + jewel.Image())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "png", body)

	user := newBrowser(t, srv)
	code, loc, _ = user.post("/register", url.Values{
		"name": {"A"}, "email": {"a@x.com"}, "password": {"pw"}, "mobile": {"1"}, "address": {"here"},
	})
	require.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/login", loc)
	_, _, body = user.get("/login")
	assert.Contains(t, body, "Registration successful! Please log in.")
	user.login("a@x.com", "pw")

	_, _, body = user.get("/")
	assert.Contains(t, body, "Ruby Ring")
	assert.Contains(t, body, "Login successful!")

	start := time.Now().Add(48 * time.Hour).Truncate(time.Minute)
	code, loc, _ = user.post("/request/"+itoa(jewel.ID), url.Values{
		"start_time": {formTime(start)}, "end_time": {formTime(start.Add(3 * time.Hour))}, "notes": {"party"},
	})
	require.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/dashboard", loc)
	req := onlyRequest(t, app)
	assert.Equal(t, 30.0, req.CalculatedAmount)
	assert.Equal(t, models.StatusPending, req.Status)

	_, _, body = user.get("/dashboard")
	assert.Contains(t, body, "Borrow request submitted!")
	assert.Contains(t, body, "30.00")

	code, loc, _ = admin.post("/admin/approve/"+itoa(req.ID), nil)
	require.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/admin/requests", loc)
	assert.Equal(t, 0, onlyJewel(t, app).Count)
	_, _, body = admin.get("/admin/requests")
	assert.Contains(t, body, "Request approved!")

	// out of stock now, so the jewel leaves the public index
	_, _, body = user.get("/")
	assert.NotContains(t, body, "Ruby Ring")

	code, _, _ = admin.post("/admin/mark_returned/"+itoa(req.ID), nil)
	require.Equal(t, http.StatusFound, code)
	req = onlyRequest(t, app)
	assert.Equal(t, models.StatusReturned, req.Status)
	assert.Zero(t, req.FineAmount)
	assert.Equal(t, 1, onlyJewel(t, app).Count)

	code, loc, _ = user.get("/logout")
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/", loc)
	code, loc, _ = user.get("/dashboard")
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/login", loc)
}

func TestNonAdminCannotMutate(t *testing.T) {
	app, srv := newTestApp(t)
	ctx := context.Background()
	_, err := app.Users.Register(ctx, registerInput("u@x.com"))
	require.NoError(t, err)
	u, err := app.Users.Authenticate(ctx, "u@x.com", "pw")
	require.NoError(t, err)
	jewel := createJewel(t, app, 1)
	start := time.Now().Add(time.Hour)
	br, err := app.Lending.CreateRequest(ctx, borrowInput(u.ID, jewel.ID, start))
	require.NoError(t, err)

	for _, who := range []string{"anonymous", "member"} {
		b := newBrowser(t, srv)
		if who == "member" {
			b.login("u@x.com", "pw")
		}
		for _, path := range []string{
			"/admin/approve/" + itoa(br.ID),
			"/admin/reject/" + itoa(br.ID),
			"/admin/mark_returned/" + itoa(br.ID),
			"/delete_jewel/" + itoa(jewel.ID),
		} {
			code, loc, _ := b.post(path, url.Values{"reason": {"x"}})
			assert.Equal(t, http.StatusFound, code, who+" "+path)
			assert.Equal(t, "/", loc, who+" "+path)
		}
		code, loc, _ := b.get("/admin/requests")
		assert.Equal(t, http.StatusFound, code)
		assert.Equal(t, "/", loc)
		_, _, body := b.get("/")
		assert.Contains(t, body, "Access denied.")
	}

	got, err := app.Lending.Get(ctx, br.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, 1, onlyJewel(t, app).Count)
}

func TestMemberRoutesRedirectToLogin(t *testing.T) {
	app, srv := newTestApp(t)
	jewel := createJewel(t, app, 1)
	b := newBrowser(t, srv)

	code, loc, _ := b.get("/request/" + itoa(jewel.ID))
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/login", loc)
	_, _, body := b.get("/login")
	assert.Contains(t, body, "Please log in.")
}

func TestBorrowValidationRerendersForm(t *testing.T) {
	app, srv := newTestApp(t)
	ctx := context.Background()
	_, err := app.Users.Register(ctx, registerInput("u@x.com"))
	require.NoError(t, err)
	jewel := createJewel(t, app, 1)

	b := newBrowser(t, srv)
	b.login("u@x.com", "pw")
	path := "/request/" + itoa(jewel.ID)
	start := time.Now().Add(24 * time.Hour)

	code, _, body := b.post(path, url.Values{"start_time": {formTime(start)}, "end_time": {formTime(start.Add(-time.Hour))}})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "End time must be after start time.")

	past := time.Now().Add(-24 * time.Hour)
	code, _, body = b.post(path, url.Values{"start_time": {formTime(past)}, "end_time": {formTime(past.Add(time.Hour))}})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Start time must be in the future.")

	code, _, body = b.post(path, url.Values{"start_time": {"soon"}, "end_time": {"later"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "valid start and end time")

	all, err := app.Lending.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdminConflictsAndNotFound(t *testing.T) {
	app, srv := newTestApp(t)
	ctx := context.Background()
	_, err := app.Users.Register(ctx, registerInput("u@x.com"))
	require.NoError(t, err)
	u, err := app.Users.Authenticate(ctx, "u@x.com", "pw")
	require.NoError(t, err)
	jewel := createJewel(t, app, 0)
	br, err := app.Lending.CreateRequest(ctx, borrowInput(u.ID, jewel.ID, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	admin := newBrowser(t, srv)
	admin.login("admin@example.com", "password")

	code, loc, _ := admin.post("/admin/approve/"+itoa(br.ID), nil)
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/admin/requests", loc)
	_, _, body := admin.get("/admin/requests")
	assert.Contains(t, body, "Jewel is out of stock.")

	code, loc, _ = admin.post("/delete_jewel/"+itoa(jewel.ID), nil)
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/admin/manage", loc)
	_, _, body = admin.get("/admin/manage")
	assert.Contains(t, body, "cannot be deleted")

	code, _, _ = admin.post("/admin/reject/"+itoa(br.ID), url.Values{"reason": {"no stock"}})
	assert.Equal(t, http.StatusFound, code)
	got, err := app.Lending.Get(ctx, br.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Equal(t, "no stock", got.Notes)

	code, _, _ = admin.post("/admin/approve/999", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _, body = admin.get("/edit_jewel/999")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "Not Found")
	code, _, _ = admin.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, code)
	code, _, _ = admin.get("/uploaded_file/.hidden")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAddJewelValidation(t *testing.T) {
	app, srv := newTestApp(t)
	admin := newBrowser(t, srv)
	admin.login("admin@example.com", "password")

	code, _, body := admin.postMultipart("/add_jewel", map[string]string{"name": "Ring", "price_per_hour": "ten"}, "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Invalid price per hour")

	code, _, body = admin.postMultipart("/add_jewel", map[string]string{"name": "", "price_per_hour": "1"}, "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Name is required")

	all, err := app.Jewels.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOversizeImageIsRejected(t *testing.T) {
	var uploads string
	app, srv := newTestAppWith(t, func(cfg *config.Config) {
		cfg.Upload.MaxBytes = 1024
		uploads = cfg.Upload.Dir
	})
	admin := newBrowser(t, srv)
	admin.login("admin@example.com", "password")
	fields := map[string]string{"name": "Ring", "price_per_hour": "1", "count": "1"}

	code, _, body := admin.postMultipart("/add_jewel", fields, "ring.png", bytes.Repeat([]byte("x"), 1500))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Image is too large.")
	all, err := app.Jewels.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	entries, err := os.ReadDir(uploads)
	require.NoError(t, err)
	assert.Empty(t, entries)

	code, loc, _ := admin.postMultipart("/add_jewel", fields, "ring.png", bytes.Repeat([]byte("x"), 1024))
	assert.Equal(t, http.StatusFound, code)
	assert.Equal(t, "/admin/manage", loc)
	j := onlyJewel(t, app)
	require.NotNil(t, j.ImageFilename)

	code, _, body = admin.postMultipart("/edit_jewel/"+itoa(j.ID), fields, "big.png", bytes.Repeat([]byte("y"), 2048))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Image is too large.")
	after := onlyJewel(t, app)
	assert.Equal(t, *j.ImageFilename, *after.ImageFilename)
	entries, err = os.ReadDir(uploads)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRegisterIgnoresRoleFieldByDefault(t *testing.T) {
	app, srv := newTestApp(t)
	b := newBrowser(t, srv)
	code, _, _ := b.post("/register", url.Values{"name": {"M"}, "email": {"m@x.com"}, "password": {"pw"}, "role": {"admin"}})
	require.Equal(t, http.StatusFound, code)
	u, err := app.Users.Authenticate(context.Background(), "m@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	code, _, body := b.post("/register", url.Values{"name": {"M"}, "email": {"m@x.com"}, "password": {"pw"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Email already registered.")

	code, _, body = b.post("/login", url.Values{"email": {"m@x.com"}, "password": {"nope"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Invalid credentials.")
}

func TestHealthz(t *testing.T) {
	_, srv := newTestApp(t)
	code, _, body := newBrowser(t, srv).get("/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}
