package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"Litreview/api/auth"
	"Litreview/api/config"
	"Litreview/api/database/dbtest"
	"Litreview/api/media"
	"Litreview/api/models"
	"Litreview/api/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testCSRFToken = "test-csrf-token"

// A 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type testEnv struct {
	server *Server
	db     *gorm.DB
	media  *media.DiskStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	security.SetCost(bcrypt.MinCost)

	db := dbtest.NewDB(t)
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode

	store, err := media.NewDiskStore(t.TempDir(), "/media")
	require.NoError(t, err)

	server, err := NewServer(cfg, db, store, nil)
	require.NoError(t, err)
	return &testEnv{server: server, db: db, media: store}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Password: "testpass123"}
	u.Prepare()
	_, err := u.SaveUser(e.db)
	require.NoError(t, err)
	return u
}

func (e *testEnv) createTicket(t *testing.T, owner *models.User, title string) *models.Ticket {
	t.Helper()
	ticket := &models.Ticket{Title: title, UserID: owner.ID}
	_, err := ticket.SaveTicket(e.db)
	require.NoError(t, err)
	return ticket
}

func (e *testEnv) createReview(t *testing.T, author *models.User, ticket *models.Ticket, headline string) *models.Review {
	t.Helper()
	review := &models.Review{TicketID: ticket.ID, UserID: author.ID, Headline: headline, Rating: 3}
	_, err := review.SaveReview(e.db)
	require.NoError(t, err)
	return review
}

func (e *testEnv) follow(t *testing.T, follower, followed *models.User) {
	t.Helper()
	_, err := models.FollowUser(e.db, follower, followed.Username)
	require.NoError(t, err)
}

// client keeps cookies between requests like a browser would and always
// carries a CSRF cookie matching testCSRFToken.
type client struct {
	t       *testing.T
	env     *testEnv
	cookies map[string]*http.Cookie
}

func (e *testEnv) anonymous(t *testing.T) *client {
	return &client{
		t:   t,
		env: e,
		cookies: map[string]*http.Cookie{
			auth.CSRFTokenCookie: {Name: auth.CSRFTokenCookie, Value: testCSRFToken},
		},
	}
}

func (e *testEnv) as(t *testing.T, user *models.User) *client {
	t.Helper()
	c := e.anonymous(t)
	token, err := e.server.Sessions.CreateToken(user.ID)
	require.NoError(t, err)
	c.cookies[auth.SessionCookie] = &http.Cookie{Name: auth.SessionCookie, Value: token}
	return c
}

func (c *client) send(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	c.env.server.Router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = &http.Cookie{Name: cookie.Name, Value: cookie.Value}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.send(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits form with the CSRF field filled in.
func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	if form.Get(auth.CSRFTokenField) == "" {
		form.Set(auth.CSRFTokenField, testCSRFToken)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req)
}

// postMultipart submits fields plus an optional image file.
func (c *client) postMultipart(path string, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(c.t, w.WriteField(auth.CSRFTokenField, testCSRFToken))
	for k, v := range fields {
		require.NoError(c.t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile(imageField, filename)
		require.NoError(c.t, err)
		_, err = part.Write(content)
		require.NoError(c.t, err)
	}
	require.NoError(c.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.send(req)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
