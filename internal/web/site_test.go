package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tcm/internal/models"
	"github.com/thenoetrevino/tcm/internal/testutil"
)

func TestHomeRedirects(t *testing.T) {
	f := newFixture(t)

	res := f.client(t, "").get("/")

	assert.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/manage/products/", res.Header().Get("Location"))
}

func TestManageRequiresLogin(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/manage/products/", "/manage/cycles/", fmt.Sprintf("/products/%d/cycles/", f.product.ID)} {
		res := f.client(t, "").get(target)
		assert.Equal(t, http.StatusUnauthorized, res.Code, target)
		assert.Contains(t, res.Header().Get("WWW-Authenticate"), "Basic", target)
	}

	res := f.client(t, "nobody").get("/manage/products/")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestProductList(t *testing.T) {
	f := newFixture(t)

	res := f.client(t, "admin").get("/manage/products/")
	require.Equal(t, http.StatusOK, res.Code)

	doc := parse(t, res)
	items := findAll(doc, "item")
	require.Len(t, items, 1)
	assert.Equal(t, fmt.Sprintf("product-%d", f.product.ID), attr(items[0], "id"))
	assert.Equal(t, []string{"Firefox"}, texts(findAll(items[0], "name")))

	// the finder's root column links into suites
	drill := findAll(doc, "drill")
	require.Len(t, drill, 1)
	assert.Equal(t, fmt.Sprintf("?finder=1&col=suite&id=%d", f.product.ID), attr(drill[0], "href"))
	gotos := findAll(doc, "goto")
	require.Len(t, gotos, 1)
	assert.Equal(t, fmt.Sprintf("/manage/suites/?product=%d", f.product.ID), attr(gotos[0], "href"))
}

func TestListIsScopedToCompany(t *testing.T) {
	f := newFixture(t)
	other := testutil.CreateTestPrincipal(t, f.repo, "Acme", "wile", testutil.AllPermissions...)
	testutil.CreateTestProduct(t, f.repo, other.CompanyID, "Rocket", models.StatusActive)

	res := f.client(t, "wile").get("/manage/products/")
	require.Equal(t, http.StatusOK, res.Code)

	assert.Equal(t, []string{"Rocket"}, texts(findAll(parse(t, res), "name")))
}

func TestSuiteListFilter(t *testing.T) {
	f := newFixture(t)
	other := testutil.CreateTestProduct(t, f.repo, f.admin.CompanyID, "Thunderbird", models.StatusActive)
	testutil.CreateTestSuite(t, f.repo, other.ID, "Mail", models.StatusActive)
	c := f.client(t, "admin")

	res := c.get(fmt.Sprintf("/manage/suites/?product=%d", other.ID))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []string{"Mail"}, texts(findAll(parse(t, res), "name")))

	res = c.get("/manage/suites/")
	assert.Equal(t, []string{"Mail", "Smoke"}, texts(findAll(parse(t, res), "name")))

	res = c.get("/manage/suites/?product=abc")
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestActionRedirectsBackToList(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "admin")
	target := fmt.Sprintf("/manage/cases/?suite=%d", f.suite.ID)

	res := c.post(target, url.Values{"action-activate": {fmt.Sprint(f.tcase.ID)}})

	assert.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, target, res.Header().Get("Location"))
	stored, err := f.repo.GetCaseByID(context.Background(), f.admin.CompanyID, f.tcase.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, stored.Status)
}

func TestConflictShowsMessageAfterRedirect(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "admin")
	target := fmt.Sprintf("/manage/cycles/?product=%d", f.product.ID)

	res := c.post(target, url.Values{"action-delete": {fmt.Sprint(f.cycle.ID)}})
	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, target, res.Header().Get("Location"))

	res = c.get(target)
	require.Equal(t, http.StatusOK, res.Code)
	msgs := findAll(parse(t, res), "message")
	require.Len(t, msgs, 1)
	assert.True(t, hasClass(msgs[0], "error"))
	assert.Equal(t, "Release 10: cannot delete an active test cycle", text(msgs[0]))

	// shown once
	res = c.get(target)
	assert.Empty(t, findAll(parse(t, res), "message"))

	_, err := f.repo.GetCycleByID(context.Background(), f.admin.CompanyID, f.cycle.ID)
	assert.NoError(t, err)
}

func TestAjaxActionRendersList(t *testing.T) {
	f := newFixture(t)

	res := f.client(t, "admin").ajaxPost("/manage/products/", url.Values{"action-clone": {fmt.Sprint(f.product.ID)}})

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []string{"Firefox", "Firefox (clone)"}, texts(findAll(parse(t, res), "name")))
}

func TestActionWithoutPermission(t *testing.T) {
	f := newFixture(t)

	res := f.client(t, "tester").post("/manage/products/", url.Values{"action-delete": {fmt.Sprint(f.product.ID)}})

	assert.Equal(t, http.StatusForbidden, res.Code)
	_, err := f.repo.GetProductByID(context.Background(), f.admin.CompanyID, f.product.ID)
	assert.NoError(t, err)
}

func TestActionOnOtherCompanyRecord(t *testing.T) {
	f := newFixture(t)
	testutil.CreateTestPrincipal(t, f.repo, "Acme", "wile", testutil.AllPermissions...)

	res := f.client(t, "wile").post("/manage/products/", url.Values{"action-delete": {fmt.Sprint(f.product.ID)}})

	assert.Equal(t, http.StatusFound, res.Code)
	_, err := f.repo.GetProductByID(context.Background(), f.admin.CompanyID, f.product.ID)
	assert.NoError(t, err)
}

func TestFinderColumnFragment(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "admin")

	res := c.get(fmt.Sprintf("/manage/products/?finder=1&col=suite&id=%d", f.product.ID))
	require.Equal(t, http.StatusOK, res.Code)

	doc := parse(t, res)
	items := findAll(doc, "finder-item")
	require.Len(t, items, 1)
	drill := findAll(items[0], "drill")
	require.Len(t, drill, 1)
	assert.Equal(t, "Smoke", text(drill[0]))
	assert.Equal(t, fmt.Sprintf("?finder=1&col=case&id=%d", f.suite.ID), attr(drill[0], "href"))
	// fragments carry no page chrome
	assert.NotContains(t, res.Body.String(), "<h1>")

	res = c.get(fmt.Sprintf("/manage/products/?finder=1&col=case&id=%d", f.suite.ID))
	require.Equal(t, http.StatusOK, res.Code)
	leaves := findAll(parse(t, res), "leaf")
	assert.Equal(t, []string{"Open a tab"}, texts(leaves))
}

func TestFinderBadQueries(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "admin")

	tests := []string{
		"/manage/products/?finder=1&col=suite",
		fmt.Sprintf("/manage/products/?finder=1&col=product&id=%d", f.product.ID),
		"/manage/products/?finder=1&col=bogus",
		"/manage/products/?finder=1&col=suite&id=x",
	}
	for _, target := range tests {
		res := c.get(target)
		assert.Equal(t, http.StatusBadRequest, res.Code, target)
	}
}

func TestCycleFinder(t *testing.T) {
	f := newFixture(t)

	res := f.client(t, "admin").get(fmt.Sprintf("/manage/cycles/?finder=1&col=cycle&id=%d", f.product.ID))

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []string{"Release 10"}, texts(findAll(parse(t, res), "leaf")))
}

func TestCreateCycleForm(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "admin")

	res := c.post("/manage/cycles/", url.Values{
		"product": {fmt.Sprint(f.product.ID)},
		"name":    {"Release 11"},
	})
	require.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/manage/cycles/", res.Header().Get("Location"))

	res = c.get("/manage/cycles/")
	doc := parse(t, res)
	assert.Contains(t, texts(findAll(doc, "name")), "Release 11")
	assert.Equal(t, []string{"Created cycle Release 11."}, texts(findAll(doc, "message")))
}

func TestCreateCycleFormErrors(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "admin")

	c.post("/manage/cycles/", url.Values{"product": {fmt.Sprint(f.product.ID)}, "name": {" "}})
	res := c.get("/manage/cycles/")
	assert.Equal(t, []string{"Cycle name cannot be empty."}, texts(findAll(parse(t, res), "message")))

	c.post("/manage/cycles/", url.Values{"name": {"Release 11"}})
	res = c.get("/manage/cycles/")
	assert.Equal(t, []string{"Choose a product for the new cycle."}, texts(findAll(parse(t, res), "message")))
}

func TestProductCycles(t *testing.T) {
	f := newFixture(t)
	testutil.CreateTestCycle(t, f.repo, f.product.ID, "Nightly", models.StatusDraft)
	testutil.CreateTestPrincipal(t, f.repo, "Acme", "wile")

	res := f.client(t, "tester").get(fmt.Sprintf("/products/%d/cycles/", f.product.ID))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []string{"Release 10"}, texts(findAll(parse(t, res), "cycle")))

	res = f.client(t, "wile").get(fmt.Sprintf("/products/%d/cycles/", f.product.ID))
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = f.client(t, "tester").get("/products/abc/cycles/")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "admin")
	c.post("/manage/cycles/", url.Values{"action-delete": {fmt.Sprint(f.cycle.ID)}})
	c.post("/manage/cases/", url.Values{"action-activate": {fmt.Sprint(f.tcase.ID)}})

	res := c.get("/debug/metrics")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "application/json", res.Header().Get("Content-Type"))

	var snap MetricsSnapshot
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &snap))
	assert.Equal(t, int64(2), snap.Requests)
	assert.Equal(t, int64(1), snap.ActionsTaken)
	assert.Equal(t, int64(1), snap.ActionConflicts)
	assert.Equal(t, 1, snap.Sessions)
}
