package ui

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/storefront/assets"
	"github.com/templui/storefront/internal/config"
	"github.com/templui/storefront/internal/ctxkeys"
	"github.com/templui/storefront/internal/model"
)

func TestHomePageRendersBuyButtons(t *testing.T) {
	products := []*model.Product{{Slug: "mug", Name: "Premium <Mug>", Price: 2500, DescriptionHTML: "<p>Heavy</p>"}}
	plans := []*model.Plan{{Slug: "monthly", Name: "Monthly", Interval: "per month", PriceID: "price_m"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := ctxkeys.WithConfig(req.Context(), &config.Config{AppName: "Shop", StripePublishableKey: "pk_test_1"})
	ctx = templ.WithNonce(ctx, "nonce123")
	rec := httptest.NewRecorder()

	Render(rec, req.WithContext(ctx), HomePage(products, plans))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-name="Premium &lt;Mug&gt;"`)
	assert.Contains(t, body, `data-price="2500"`)
	assert.Contains(t, body, `data-price-id="price_m"`)
	assert.Contains(t, body, "$25.00")
	assert.Contains(t, body, "<p>Heavy</p>")
	assert.Contains(t, body, `data-stripe-key="pk_test_1"`)
	assert.Contains(t, body, `nonce="nonce123"`)
	assert.True(t, strings.HasPrefix(body, "<!doctype html>"))
	assert.Contains(t, body, `<link rel="stylesheet" href="/assets/css/output.css">`)
	assert.Contains(t, body, `<script src="/assets/js/checkout.js" nonce="nonce123" defer>`)
}

func TestHomePageWithoutPlans(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), HomePage(nil, nil))

	assert.Contains(t, rec.Body.String(), "No products available.")
	assert.NotContains(t, rec.Body.String(), "Memberships")
}

func TestResultPages(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/success", nil), SuccessPage())
	assert.Contains(t, rec.Body.String(), "Payment successful")

	rec = httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/cancel", nil), CancelPage())
	assert.Contains(t, rec.Body.String(), "No payment was taken.")
	assert.Contains(t, rec.Body.String(), "<title>Checkout canceled · Storefront</title>")
}

func TestNotFoundPageShowsPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req = req.WithContext(ctxkeys.WithURLPath(req.Context(), "/nope<script>"))
	rec := httptest.NewRecorder()

	RenderStatus(rec, req, http.StatusNotFound, NotFoundPage())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
	assert.Contains(t, rec.Body.String(), "/nope&lt;script&gt;")
}

var classAttr = regexp.MustCompile(`class="([^"]*)"`)

func TestStylesheetCoversRenderedClasses(t *testing.T) {
	css, err := fs.ReadFile(assets.AssetsFS, "css/output.css")
	require.NoError(t, err)

	products := []*model.Product{{Slug: "mug", Name: "Mug", Price: 2500}}
	plans := []*model.Plan{{Slug: "monthly", Name: "Monthly", PriceID: "price_m"}}

	pages := map[string]templ.Component{
		"home":      HomePage(products, plans),
		"empty":     HomePage(nil, nil),
		"success":   SuccessPage(),
		"not found": NotFoundPage(),
	}
	for name, page := range pages {
		rec := httptest.NewRecorder()
		Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), page)

		for _, m := range classAttr.FindAllStringSubmatch(rec.Body.String(), -1) {
			for _, class := range strings.Fields(m[1]) {
				selector := regexp.QuoteMeta("."+strings.ReplaceAll(class, ":", `\:`)) + `[{:]`
				assert.Regexp(t, selector, string(css), "page %s: class %s has no rule", name, class)
			}
		}
	}
}

func TestButtonClassMergesConflicts(t *testing.T) {
	class := ButtonClass(ButtonPrimary, "bg-red-600")
	assert.Contains(t, class, "bg-red-600")
	assert.NotContains(t, class, "bg-indigo-600")

	assert.Contains(t, ButtonClass(ButtonSecondary), "px-6")
	assert.NotContains(t, ButtonClass(ButtonSecondary), "px-4")
}
