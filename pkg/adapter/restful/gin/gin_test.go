// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/momeni/fastfood/internal/test/dbcontainer"
	"github.com/momeni/fastfood/internal/test/memrepo"
	"github.com/momeni/fastfood/internal/test/schema"
	"github.com/momeni/fastfood/pkg/adapter/config"
	"github.com/momeni/fastfood/pkg/adapter/db/postgres"
	"github.com/momeni/fastfood/pkg/adapter/db/postgres/migration"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin/auth"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin/fooditemsrs"
	"github.com/momeni/fastfood/pkg/adapter/restful/gin/routes"
	"github.com/momeni/fastfood/pkg/core/model"
	"github.com/momeni/fastfood/pkg/core/repo"
	"github.com/momeni/fastfood/pkg/core/usecase/fooditemsuc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret"
	testIssuer = "fastfood-tests"
)

// ginSuite contains the HTTP level tests which are shared by the
// in-memory and PostgreSQL backed suites. Each test creates its own
// items, so tests do not depend on each other or on the seed data.
type ginSuite struct {
	suite.Suite

	Ctx   context.Context
	Gin   *gin.Engine
	Token string
}

func newConfig() *config.Config {
	logger, metrics := false, true
	c := &config.Config{
		Gin: config.Gin{
			Logger:  &logger,
			Metrics: &metrics,
		},
		Auth: config.Auth{
			Secret: testSecret,
			Issuer: testIssuer,
		},
	}
	c.Gin.Normalize()
	return c
}

func signToken(secret string, exp time.Time) string {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "tester",
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := t.SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return s
}

func burger(name string) model.FoodItem {
	return model.FoodItem{
		Name:        name,
		Description: "grilled",
		Price:       decimal.RequireFromString("5.50"),
		ImgURL:      "/img/" + name + ".png",
		FoodType:    "Burger",
	}
}

// send serves a request using gs.Gin. The body may be nil, a string
// which is sent as is, or a value which is encoded as JSON.
// If token is empty, no Authorization header is sent.
func (gs *ginSuite) send(
	method, path string, body any, token string,
) *httptest.ResponseRecorder {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		gs.Require().NoError(err, "cannot encode request body")
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(gs.Ctx, method, path, r)
	gs.Require().NoError(err, "cannot create %s request", method)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	gs.Gin.ServeHTTP(w, req)
	return w
}

func (gs *ginSuite) decode(w *httptest.ResponseRecorder, res any) {
	gs.Require().NoError(
		json.Unmarshal(w.Body.Bytes(), res), "body is not json: %s", w.Body,
	)
}

func (gs *ginSuite) requireDetail(
	w *httptest.ResponseRecorder, code int, detail string,
) {
	gs.Require().Equal(code, w.Code, "body: %s", w.Body)
	res := &struct{ Detail string }{}
	gs.decode(w, res)
	gs.Equal(detail, res.Detail)
}

func (gs *ginSuite) create(fi model.FoodItem) model.FoodItem {
	w := gs.send(http.MethodPost, "/api/fooditems", fi, gs.Token)
	gs.Require().Equal(http.StatusCreated, w.Code, "body: %s", w.Body)
	created := model.FoodItem{}
	gs.decode(w, &created)
	return created
}

func (gs *ginSuite) TestCreateUpdateDelete() {
	in := burger("Classic")
	in.ID = 999 // ignored by create
	created := gs.create(in)
	gs.NotZero(created.ID)
	gs.NotEqual(int64(999), created.ID)
	gs.Equal(int64(1), created.Version)
	gs.Equal("Classic", created.Name)
	gs.True(in.Price.Equal(created.Price), "price: %s", created.Price)
	itemPath := fmt.Sprintf("/api/fooditems/%d", created.ID)

	w := gs.send(http.MethodGet, itemPath, nil, gs.Token)
	gs.Require().Equal(http.StatusOK, w.Code)
	got := model.FoodItem{}
	gs.decode(w, &got)
	gs.Equal(created.Name, got.Name)
	gs.Equal(created.FoodType, got.FoodType)

	upd := burger("Deluxe")
	upd.ID = created.ID
	upd.Price = decimal.RequireFromString("7.25")
	w = gs.send(http.MethodPut, itemPath, upd, gs.Token)
	gs.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body)
	updated := model.FoodItem{}
	gs.decode(w, &updated)
	gs.Equal("Deluxe", updated.Name)
	gs.Equal(int64(2), updated.Version)
	gs.True(upd.Price.Equal(updated.Price), "price: %s", updated.Price)

	w = gs.send(http.MethodDelete, itemPath, nil, gs.Token)
	gs.Require().Equal(http.StatusNoContent, w.Code)
	gs.Empty(w.Body.Bytes())

	gs.requireDetail(
		gs.send(http.MethodGet, itemPath, nil, gs.Token),
		http.StatusNotFound,
		fmt.Sprintf("FoodItem with ID %d not found.", created.ID),
	)
	gs.requireDetail(
		gs.send(http.MethodDelete, itemPath, nil, gs.Token),
		http.StatusNotFound, "FoodItem not found.",
	)
	gs.requireDetail(
		gs.send(http.MethodPut, itemPath, upd, gs.Token),
		http.StatusNotFound,
		fmt.Sprintf("FoodItem with ID %d not found.", created.ID),
	)
}

func (gs *ginSuite) TestCreateLocation() {
	w := gs.send(http.MethodPost, "/api/fooditems", burger("Loc"), gs.Token)
	gs.Require().Equal(http.StatusCreated, w.Code)
	created := model.FoodItem{}
	gs.decode(w, &created)
	gs.Equal(
		fmt.Sprintf("/api/fooditems/%d", created.ID),
		w.Header().Get("Location"),
	)
}

func (gs *ginSuite) TestListIsPublic() {
	created := gs.create(burger("Listed"))
	w := gs.send(http.MethodGet, "/api/fooditems", nil, "")
	gs.Require().Equal(http.StatusOK, w.Code)
	items := []model.FoodItem{}
	gs.decode(w, &items)
	found := false
	for i, fi := range items {
		if i > 0 {
			gs.Less(items[i-1].ID, fi.ID, "items are ordered by id")
		}
		found = found || fi.ID == created.ID
	}
	gs.True(found, "created item is not listed")
}

func (gs *ginSuite) TestAuthentication() {
	expired := signToken(testSecret, time.Now().Add(-time.Minute))
	forged := signToken("another-secret", time.Now().Add(time.Hour))
	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/fooditems/1", nil},
		{http.MethodPost, "/api/fooditems", burger("x")},
		{http.MethodPut, "/api/fooditems/1", burger("x")},
		{http.MethodDelete, "/api/fooditems/1", nil},
		{http.MethodGet, "/api/fooditems/foodtypes", nil},
		{http.MethodPost, "/api/fooditems/foodtypes", `{"foodType":"x"}`},
	} {
		gs.Run(tc.method+" "+tc.path, func() {
			gs.requireDetail(
				gs.send(tc.method, tc.path, tc.body, ""),
				http.StatusUnauthorized, auth.ErrMissingToken.Error(),
			)
			for _, token := range []string{expired, forged, "garbage"} {
				gs.requireDetail(
					gs.send(tc.method, tc.path, tc.body, token),
					http.StatusUnauthorized, auth.ErrInvalidToken.Error(),
				)
			}
		})
	}
}

func (gs *ginSuite) TestUpdateMismatchingIDs() {
	created := gs.create(burger("Mismatch"))
	in := burger("Other")
	in.ID = created.ID + 1
	gs.requireDetail(
		gs.send(
			http.MethodPut,
			fmt.Sprintf("/api/fooditems/%d", created.ID),
			in, gs.Token,
		),
		http.StatusBadRequest,
		fmt.Sprintf(
			"ID mismatch: URL ID (%d) does not match Body ID (%d).",
			created.ID, in.ID,
		),
	)
}

func (gs *ginSuite) TestUpdateStaleVersion() {
	created := gs.create(burger("Stale"))
	itemPath := fmt.Sprintf("/api/fooditems/%d", created.ID)
	in := burger("First")
	in.ID = created.ID
	in.Version = created.Version
	w := gs.send(http.MethodPut, itemPath, in, gs.Token)
	gs.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body)

	in.Name = "Second"
	gs.requireDetail(
		gs.send(http.MethodPut, itemPath, in, gs.Token),
		http.StatusInternalServerError,
		fooditemsuc.ErrConcurrencyConflict.Error(),
	)
}

func (gs *ginSuite) TestPriceIsRoundedToCents() {
	in := burger("Precise")
	in.Price = decimal.RequireFromString("5.555")
	created := gs.create(in)
	gs.Equal("5.56", created.Price.String())

	itemPath := fmt.Sprintf("/api/fooditems/%d", created.ID)
	w := gs.send(http.MethodGet, itemPath, nil, gs.Token)
	gs.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body)
	got := model.FoodItem{}
	gs.decode(w, &got)
	gs.Equal(created.Price.String(), got.Price.String())
	gs.Equal(created.Version, got.Version)

	in = created
	in.Price = decimal.RequireFromString("0.125")
	w = gs.send(http.MethodPut, itemPath, in, gs.Token)
	gs.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body)
	updated := model.FoodItem{}
	gs.decode(w, &updated)
	gs.Equal("0.13", updated.Price.String())
}

func (gs *ginSuite) TestNonPositiveIDsAreNotFound() {
	for _, id := range []int64{0, -1} {
		itemPath := fmt.Sprintf("/api/fooditems/%d", id)
		gs.requireDetail(
			gs.send(http.MethodGet, itemPath, nil, gs.Token),
			http.StatusNotFound,
			fmt.Sprintf("FoodItem with ID %d not found.", id),
		)
		gs.requireDetail(
			gs.send(http.MethodDelete, itemPath, nil, gs.Token),
			http.StatusNotFound, "FoodItem not found.",
		)
		in := burger("Ghost")
		in.ID = id
		gs.requireDetail(
			gs.send(http.MethodPut, itemPath, in, gs.Token),
			http.StatusNotFound,
			fmt.Sprintf("FoodItem with ID %d not found.", id),
		)
	}
}

func (gs *ginSuite) TestBadRequest() {
	w := gs.send(http.MethodGet, "/api/fooditems/abc", nil, gs.Token)
	gs.Require().Equal(http.StatusBadRequest, w.Code)
	errs := map[string][]string{}
	gs.decode(w, &errs)
	gs.Equal(
		[]string{"Path param id must be an integer."}, errs["id"],
	)

	w = gs.send(http.MethodPost, "/api/fooditems", `{"name":"x"}`, gs.Token)
	gs.Require().Equal(http.StatusBadRequest, w.Code)
	errs = map[string][]string{}
	gs.decode(w, &errs)
	for _, f := range []string{"Description", "Price", "ImgURL", "FoodType"} {
		gs.Len(errs[f], 1, "missing error for %s", f)
		if len(errs[f]) == 1 {
			gs.Contains(errs[f][0], "failed on the 'required' tag")
		}
	}
	gs.NotContains(errs, "Name")

	w = gs.send(http.MethodPost, "/api/fooditems", `{"name":`, gs.Token)
	gs.Equal(http.StatusBadRequest, w.Code)
	w = gs.send(http.MethodPost, "/api/fooditems", nil, gs.Token)
	gs.Equal(http.StatusBadRequest, w.Code)
}

func (gs *ginSuite) TestFoodTypes() {
	foodType := "Soup " + uuid.NewString()
	w := gs.send(
		http.MethodPost, "/api/fooditems/foodtypes",
		model.FoodTypeRequest{FoodType: foodType}, gs.Token,
	)
	gs.Require().Equal(http.StatusOK, w.Code, "body: %s", w.Body)
	msg := &struct{ Message string }{}
	gs.decode(w, msg)
	gs.Equal(fooditemsrs.FoodTypeAddedMessage, msg.Message)

	w = gs.send(http.MethodGet, "/api/fooditems/foodtypes", nil, gs.Token)
	gs.Require().Equal(http.StatusOK, w.Code)
	types := []string{}
	gs.decode(w, &types)
	gs.Contains(types, foodType)

	gs.requireDetail(
		gs.send(
			http.MethodPost, "/api/fooditems/foodtypes",
			model.FoodTypeRequest{FoodType: foodType}, gs.Token,
		),
		http.StatusConflict, fooditemsuc.ErrFoodTypeExists.Error(),
	)
	for _, body := range []string{`{"foodType":"  "}`, `{}`} {
		gs.requireDetail(
			gs.send(
				http.MethodPost, "/api/fooditems/foodtypes", body, gs.Token,
			),
			http.StatusBadRequest, fooditemsuc.ErrFoodTypeRequired.Error(),
		)
	}

	w = gs.send(http.MethodGet, "/api/fooditems", nil, "")
	items := []model.FoodItem{}
	gs.decode(w, &items)
	var placeholder *model.FoodItem
	for i := range items {
		if items[i].FoodType == foodType {
			placeholder = &items[i]
		}
	}
	gs.Require().NotNil(placeholder, "placeholder item is not listed")
	gs.Equal(model.PlaceholderName, placeholder.Name)
	gs.Equal(model.PlaceholderDescription, placeholder.Description)
	gs.Equal(model.PlaceholderImgURL, placeholder.ImgURL)
	gs.True(placeholder.Price.IsZero())
}

func (gs *ginSuite) TestRequestID() {
	req, err := http.NewRequest(http.MethodGet, "/api/fooditems", nil)
	gs.Require().NoError(err)
	req.Header.Set(gin.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	gs.Gin.ServeHTTP(w, req)
	gs.Equal("req-42", w.Header().Get(gin.RequestIDHeader))

	w = gs.send(http.MethodGet, "/api/fooditems", nil, "")
	_, err = uuid.Parse(w.Header().Get(gin.RequestIDHeader))
	gs.NoError(err, "a random request id is expected")
}

type GinTestSuite struct {
	ginSuite

	Pool *memrepo.Pool
}

func TestGinTestSuite(t *testing.T) {
	suite.Run(t, &GinTestSuite{ginSuite: ginSuite{
		Ctx:   context.Background(),
		Token: signToken(testSecret, time.Now().Add(time.Hour)),
	}})
}

func (gts *GinTestSuite) SetupTest() {
	c := newConfig()
	gts.Gin = c.Gin.NewEngine()
	gts.Pool = memrepo.NewPool()
	err := routes.RegisterWithRepo(gts.Gin, gts.Pool, memrepo.New(), c)
	gts.Require().NoError(err, "failed to register Gin routes")
}

func (gts *GinTestSuite) TestUpdateRaceWithDelete() {
	stored := gts.Pool.Store.Seed(burger("Classic"))[0]
	gts.Pool.Store.BeforeUpdate = func(s *memrepo.Store, fi *model.FoodItem) {
		s.BeforeUpdate = nil
		s.Remove(fi.ID)
	}
	in := burger("Mine")
	in.ID = stored.ID
	gts.requireDetail(
		gts.send(
			http.MethodPut,
			fmt.Sprintf("/api/fooditems/%d", stored.ID),
			in, gts.Token,
		),
		http.StatusNotFound,
		fmt.Sprintf("FoodItem with ID %d not found during update.", stored.ID),
	)
}

func (gts *GinTestSuite) TestUpdateRaceWithWriter() {
	stored := gts.Pool.Store.Seed(burger("Classic"))[0]
	gts.Pool.Store.BeforeUpdate = func(s *memrepo.Store, fi *model.FoodItem) {
		s.BeforeUpdate = nil
		s.Touch(fi.ID)
	}
	in := burger("Mine")
	in.ID = stored.ID
	gts.requireDetail(
		gts.send(
			http.MethodPut,
			fmt.Sprintf("/api/fooditems/%d", stored.ID),
			in, gts.Token,
		),
		http.StatusInternalServerError,
		fooditemsuc.ErrConcurrencyConflict.Error(),
	)
	gts.Equal("Classic", gts.Pool.Store.Items()[0].Name)
}

func (gts *GinTestSuite) TestListEmpty() {
	w := gts.send(http.MethodGet, "/api/fooditems", nil, "")
	gts.Require().Equal(http.StatusOK, w.Code)
	gts.JSONEq(`[]`, w.Body.String())
	w = gts.send(http.MethodGet, "/api/fooditems/foodtypes", nil, gts.Token)
	gts.Require().Equal(http.StatusOK, w.Code)
	gts.JSONEq(`[]`, w.Body.String())
}

func (gts *GinTestSuite) TestMetrics() {
	gts.send(http.MethodGet, "/api/fooditems", nil, "")
	gts.send(http.MethodGet, "/api/fooditems/7", nil, "")
	w := gts.send(http.MethodGet, "/metrics", nil, "")
	gts.Require().Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	gts.Contains(body,
		`ffweb_http_requests_total{method="GET",route="/api/fooditems",status="200"} 1`,
	)
	gts.Contains(body,
		`ffweb_http_requests_total{method="GET",route="/api/fooditems/:id",status="401"} 1`,
	)
}

type IntegrationGinTestSuite struct {
	ginSuite

	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		ginSuite: ginSuite{
			Ctx:   ctx,
			Token: signToken(testSecret, time.Now().Add(time.Hour)),
		},
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			err := c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
				return migration.NewInitializer(tx).InitDevSchema(ctx)
			})
			if err != nil {
				return err
			}
			v := schema.NewVerifier(c)
			v.VerifySchema(ctx, igts.T())
			v.VerifyDevData(ctx, igts.T())
			return nil
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	c := newConfig()
	igts.Gin = c.Gin.NewEngine()
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Gin, igts.Pool, c)
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) TestDevData() {
	w := igts.send(http.MethodGet, "/api/fooditems/foodtypes", nil, igts.Token)
	igts.Require().Equal(http.StatusOK, w.Code)
	types := []string{}
	igts.decode(w, &types)
	igts.Subset(types, []string{"Burger", "Drinks", "Pizza"})

	w = igts.send(http.MethodGet, "/api/fooditems/1", nil, igts.Token)
	igts.Require().Equal(http.StatusOK, w.Code)
	fi := model.FoodItem{}
	igts.decode(w, &fi)
	igts.Equal("Classic Burger", fi.Name)
	igts.Equal(int64(1), fi.Version)
}
