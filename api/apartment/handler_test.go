package apartment_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatertot/apartmentsapi/api/apartment"
	"github.com/tatertot/apartmentsapi/api/session"
	"github.com/tatertot/apartmentsapi/shared/audit"
	"github.com/tatertot/apartmentsapi/shared/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func fptr(v float64) *float64 { return &v }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&session.UserModel{},
		&session.SessionModel{},
		&apartment.ApartmentModel{},
		&audit.Entry{},
	))
	return db
}

// newTestApp wires the same routes and gating as the server entry point.
func newTestApp(t *testing.T, db *gorm.DB) *echo.Echo {
	t.Helper()
	svc := session.NewService(db, session.NewGormStore(db), time.Hour)
	sessionHandler := session.NewHandler(svc)
	apartmentHandler := apartment.NewHandler(db)

	e := echo.New()
	e.Use(middleware.SessionMiddleware(svc))
	e.POST("/login", sessionHandler.Login)
	e.POST("/logout", sessionHandler.Logout)
	e.GET("/me", sessionHandler.WhoAmI)
	e.GET("/apartments", apartmentHandler.ListApartments)
	e.POST("/apartments", apartmentHandler.CreateApartment, middleware.RequireDev)
	e.DELETE("/apartments/:id", apartmentHandler.DeleteApartment, middleware.RequireDev)
	return e
}

func createUser(t *testing.T, db *gorm.DB, username, password string, isDev bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&session.UserModel{
		Username:       username,
		HashedPassword: string(hash),
		IsDev:          isDev,
	}).Error)
}

func seedRows(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []apartment.ApartmentModel{
		{Name: "Riverwalk Flats", Price: fptr(1950), SquareFootage: 980, Bedrooms: 2, Bathrooms: 2, Distance1: fptr(3.5), Distance2: fptr(36.8)},
		{Name: "The Meadows", Price: fptr(1589), SquareFootage: 663, Bedrooms: 1, Bathrooms: 1, Distance1: fptr(2.1), Distance2: fptr(38.5)},
		{Name: "Bell Flatirons", Price: nil, SquareFootage: 0, Bedrooms: 2, Bathrooms: 1, Distance1: fptr(41.0), Distance2: fptr(6.3)},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func doJSON(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, e *echo.Echo, username, password string) *http.Cookie {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/login", fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("login response had no session cookie")
	return nil
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&apartment.ApartmentModel{}).Count(&count).Error)
	return count
}

func TestListApartmentsOrderedByPrice(t *testing.T) {
	db := newTestDB(t)
	seedRows(t, db)
	e := newTestApp(t, db)

	rec := doJSON(e, http.MethodGet, "/apartments", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res apartment.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.IsDev)

	require.Len(t, res.Rows, 3)
	assert.Equal(t, "The Meadows", res.Rows[0].Name)
	assert.Equal(t, "Riverwalk Flats", res.Rows[1].Name)
	// Null price sorts last.
	assert.Equal(t, "Bell Flatirons", res.Rows[2].Name)
	assert.Nil(t, res.Rows[2].Price)
}

func TestListApartmentsDevFlag(t *testing.T) {
	db := newTestDB(t)
	seedRows(t, db)
	createUser(t, db, "dev", "hunter2", true)
	e := newTestApp(t, db)

	cookie := loginAs(t, e, "dev", "hunter2")
	rec := doJSON(e, http.MethodGet, "/apartments", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var res apartment.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.IsDev)
}

func TestCreateApartmentRoundTrip(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "dev", "hunter2", true)
	e := newTestApp(t, db)
	cookie := loginAs(t, e, "dev", "hunter2")

	body := `{"name":"New Place","price":1200,"square_footage":750,"bedrooms":2,"bathrooms":1,"distance1":3.5,"distance2":10}`
	rec := doJSON(e, http.MethodPost, "/apartments", body, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var created apartment.CreateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.NotZero(t, created.Apartment.ID)
	assert.Equal(t, "New Place", created.Apartment.Name)

	list := doJSON(e, http.MethodGet, "/apartments", "", cookie)
	var res apartment.ListResponse
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &res))
	require.Len(t, res.Rows, 1)

	got := res.Rows[0]
	assert.Equal(t, created.Apartment.ID, got.ID)
	require.NotNil(t, got.Price)
	assert.Equal(t, 1200.0, *got.Price)
	assert.Equal(t, 750.0, got.SquareFootage)
	assert.Equal(t, 2.0, got.Bedrooms)
	assert.Equal(t, 1.0, got.Bathrooms)
	require.NotNil(t, got.Distance1)
	assert.Equal(t, 3.5, *got.Distance1)
	require.NotNil(t, got.Distance2)
	assert.Equal(t, 10.0, *got.Distance2)
	assert.Nil(t, got.URL)

	// The admin action left an audit trail.
	var entries []audit.Entry
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "dev", entries[0].Username)
	assert.Equal(t, "apartment.create", entries[0].Action)
}

func TestCreateApartmentMissingField(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "dev", "hunter2", true)
	e := newTestApp(t, db)
	cookie := loginAs(t, e, "dev", "hunter2")

	body := `{"name":"No Beds","price":1200,"square_footage":750,"bathrooms":1,"distance1":3.5,"distance2":10}`
	rec := doJSON(e, http.MethodPost, "/apartments", body, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, false, res["success"])
	assert.Contains(t, res["error"], "bedrooms")

	assert.Zero(t, countRows(t, db))
}

func TestCreateApartmentRequiresDev(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "viewer", "pass", false)
	e := newTestApp(t, db)

	body := `{"name":"Nope","price":1,"square_footage":1,"bedrooms":1,"bathrooms":1,"distance1":1,"distance2":1}`

	// Unauthenticated.
	rec := doJSON(e, http.MethodPost, "/apartments", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Authenticated but not dev.
	cookie := loginAs(t, e, "viewer", "pass")
	rec = doJSON(e, http.MethodPost, "/apartments", body, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Zero(t, countRows(t, db))
}

func TestDeleteApartmentRequiresDev(t *testing.T) {
	db := newTestDB(t)
	seedRows(t, db)
	createUser(t, db, "viewer", "pass", false)
	e := newTestApp(t, db)
	cookie := loginAs(t, e, "viewer", "pass")

	before := countRows(t, db)
	rec := doJSON(e, http.MethodDelete, "/apartments/1", "", cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The row survived.
	assert.Equal(t, before, countRows(t, db))

	list := doJSON(e, http.MethodGet, "/apartments", "", cookie)
	var res apartment.ListResponse
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &res))
	found := false
	for _, row := range res.Rows {
		if row.ID == 1 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDeleteApartment(t *testing.T) {
	db := newTestDB(t)
	seedRows(t, db)
	createUser(t, db, "dev", "hunter2", true)
	e := newTestApp(t, db)
	cookie := loginAs(t, e, "dev", "hunter2")

	rec := doJSON(e, http.MethodDelete, "/apartments/1", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, int64(2), countRows(t, db))

	// Deleting a nonexistent id still succeeds.
	rec = doJSON(e, http.MethodDelete, "/apartments/999", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestDeleteApartmentInvalidID(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "dev", "hunter2", true)
	e := newTestApp(t, db)
	cookie := loginAs(t, e, "dev", "hunter2")

	rec := doJSON(e, http.MethodDelete, "/apartments/abc", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
