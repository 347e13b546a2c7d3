package ghl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchContactsBody(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"contacts":[{"id":"c1","email":"a@b.co"}],"total":1}`))
	})

	result, err := c.SearchContacts(context.Background(), SearchContactsParams{Query: "smith"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Contacts, 1)

	assert.Equal(t, "smith", body["query"])
	assert.Equal(t, "loc_default", body["locationId"])
	assert.Equal(t, float64(25), body["pageLimit"], "limit defaults to 25")
}

func TestConcurrentSearchesAreIndependent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		// Echo the query back as the contact's email so each caller can
		// verify it received its own results.
		fmt.Fprintf(w, `{"contacts":[{"id":"c1","email":%q}],"total":1}`, body["query"])
	})

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	results := make([]*SearchContactsResult, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.SearchContacts(context.Background(), SearchContactsParams{
				Query: fmt.Sprintf("query-%d", i),
			})
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Len(t, results[i].Contacts, 1)
		assert.Equal(t, fmt.Sprintf("query-%d", i), results[i].Contacts[0].Email)
	}
}

func TestUpsertContact(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts/upsert", r.URL.Path)
		w.Write([]byte(`{"contact":{"id":"c9","email":"new@b.co"},"new":true}`))
	})

	contact, created, err := c.UpsertContact(context.Background(), CreateContactParams{Email: "new@b.co"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "c9", contact.ID)
}

func TestContactTagsEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, []string{"lead", "warm"}, body["tags"])
		w.Write([]byte(`{"tags":["lead","warm","existing"]}`))
	})

	tags, err := c.AddContactTags(context.Background(), "c1", []string{"lead", "warm"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lead", "warm", "existing"}, tags)
}

func TestDeleteContact(t *testing.T) {
	var method, path string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Write([]byte(`{"succeded":true}`))
	})

	require.NoError(t, c.DeleteContact(context.Background(), "c1"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/contacts/c1", path)
}

func TestContactTaskLifecycle(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.Write([]byte(`{"task":{"id":"t1","title":"Follow up"}}`))
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"tasks":[{"id":"t1","title":"Follow up"}]}`))
		case r.Method == http.MethodPut:
			w.Write([]byte(`{"task":{"id":"t1","title":"Follow up","completed":true}}`))
		default:
			w.Write([]byte(`{}`))
		}
	})

	ctx := context.Background()
	task, err := c.CreateContactTask(ctx, "c1", TaskParams{Title: "Follow up", DueDate: "2026-09-01T10:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "t1", task.ID)

	tasks, err := c.GetContactTasks(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	done := true
	updated, err := c.UpdateContactTask(ctx, "c1", "t1", TaskParams{Title: "Follow up", Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)

	require.NoError(t, c.DeleteContactTask(ctx, "c1", "t1"))
}

func TestUpdateContactTaskOmitsUnsetCompleted(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"task":{"id":"t1","title":"Renamed","completed":true}}`))
	})

	_, err := c.UpdateContactTask(context.Background(), "c1", "t1", TaskParams{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", body["title"])
	_, sent := body["completed"]
	assert.False(t, sent, "completed must be absent when not set")
}
