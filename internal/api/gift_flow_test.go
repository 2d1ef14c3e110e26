package api_test

import (
	"net/http"
	"testing"

	"github.com/mari/gift-list-website/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type giftResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsPurchased bool    `json:"isPurchased"`
}

func TestGiftFlow_CreateEditDelete(t *testing.T) {
	ts := testutil.NewMemoryServer(t)

	alice := testutil.NewUserBuilder().WithUsername("alice").BuildAndAuthenticate(t, ts)

	// Create
	resp := doJSON(t, http.MethodPost, ts.APIURL("/admin/alice/gifts/"), alice.AccessToken, map[string]interface{}{
		"name":        "Espresso Machine",
		"description": "The loud kind",
		"price":       1200.50,
	})
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	var created giftResponse
	testutil.AssertJSONResponse(t, resp, &created)
	resp.Body.Close()
	require.NotEmpty(t, created.ID)

	// It shows up on the public page immediately, the mutation cleared the cache
	resp = doJSON(t, http.MethodGet, ts.APIURL("/gift/alice"), "", nil)
	var page giftPageResponse
	testutil.AssertJSONResponse(t, resp, &page)
	resp.Body.Close()
	require.Len(t, page.Gifts, 1)
	assert.Equal(t, "Espresso Machine", page.Gifts[0].Name)

	// Edit
	resp = doJSON(t, http.MethodPut, ts.APIURL("/admin/alice/gifts/"+created.ID), alice.AccessToken, map[string]interface{}{
		"price":       999.99,
		"isPurchased": true,
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	var updated giftResponse
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, "Espresso Machine", updated.Name)
	assert.Equal(t, 999.99, updated.Price)
	assert.True(t, updated.IsPurchased)

	// Delete
	resp = doJSON(t, http.MethodDelete, ts.APIURL("/admin/alice/gifts/"+created.ID), alice.AccessToken, nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.APIURL("/gift/alice"), "", nil)
	testutil.AssertJSONResponse(t, resp, &page)
	resp.Body.Close()
	assert.Empty(t, page.Gifts)
}

func TestGiftFlow_CreateValidation(t *testing.T) {
	ts := testutil.NewMemoryServer(t)

	alice := testutil.NewUserBuilder().WithUsername("alice").BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodPost, ts.APIURL("/admin/alice/gifts/"), alice.AccessToken, map[string]interface{}{
		"name":  "",
		"price": 10,
	})
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestGiftFlow_EditUnknownGift(t *testing.T) {
	ts := testutil.NewMemoryServer(t)

	alice := testutil.NewUserBuilder().WithUsername("alice").BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodPut, ts.APIURL("/admin/alice/gifts/does-not-exist"), alice.AccessToken, map[string]interface{}{
		"name": "Renamed",
	})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "gift not found")
}

func TestProfileFlow_PartialUpdate(t *testing.T) {
	ts := testutil.NewMemoryServer(t)

	alice := testutil.NewUserBuilder().
		WithUsername("alice").
		WithDisplayName("Alice Original").
		BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodPut, ts.APIURL("/admin/alice/profile"), alice.AccessToken, map[string]string{
		"bio": "lists all year round",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var profile struct {
		Username    string `json:"username"`
		DisplayName string `json:"displayName"`
		Bio         string `json:"bio"`
	}
	testutil.AssertJSONResponse(t, resp, &profile)
	resp.Body.Close()

	// Only the bio changed
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "Alice Original", profile.DisplayName)
	assert.Equal(t, "lists all year round", profile.Bio)
}
