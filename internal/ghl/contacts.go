package ghl

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Contact is the subset of the remote contact object the adapter works with.
// Unknown remote fields are dropped on decode.
type Contact struct {
	ID          string         `json:"id"`
	LocationID  string         `json:"locationId,omitempty"`
	FirstName   string         `json:"firstName,omitempty"`
	LastName    string         `json:"lastName,omitempty"`
	Name        string         `json:"contactName,omitempty"`
	Email       string         `json:"email,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Source      string         `json:"source,omitempty"`
	DateAdded   string         `json:"dateAdded,omitempty"`
	CustomField map[string]any `json:"customField,omitempty"`
}

// Task is a contact task.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Completed   bool   `json:"completed"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	ContactID   string `json:"contactId,omitempty"`
	DateAdded   string `json:"dateAdded,omitempty"`
	DateUpdated string `json:"dateUpdated,omitempty"`
}

// Note is a contact note.
type Note struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	UserID    string `json:"userId,omitempty"`
	ContactID string `json:"contactId,omitempty"`
	DateAdded string `json:"dateAdded,omitempty"`
}

// CreateContactParams holds the writable contact fields.
type CreateContactParams struct {
	LocationID string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Tags       []string
	Source     string
}

func (p CreateContactParams) payload(locationID string) map[string]any {
	return compact(map[string]any{
		"locationId": locationID,
		"firstName":  p.FirstName,
		"lastName":   p.LastName,
		"email":      p.Email,
		"phone":      p.Phone,
		"tags":       p.Tags,
		"source":     p.Source,
	})
}

// CreateContact creates a contact in the given (or default) location.
func (c *Client) CreateContact(ctx context.Context, p CreateContactParams) (*Contact, error) {
	body := p.payload(c.defaultLocationID(p.LocationID))
	data, err := c.do(ctx, http.MethodPost, "/contacts/", nil, body)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Contact *Contact `json:"contact"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Contact, nil
}

// GetContact fetches a contact by ID.
func (c *Client) GetContact(ctx context.Context, contactID string) (*Contact, error) {
	data, err := c.do(ctx, http.MethodGet, "/contacts/"+contactID, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Contact *Contact `json:"contact"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Contact, nil
}

// UpdateContact applies the non-empty fields of p to an existing contact.
func (c *Client) UpdateContact(ctx context.Context, contactID string, p CreateContactParams) (*Contact, error) {
	body := p.payload("")
	delete(body, "locationId") // not accepted on update
	data, err := c.do(ctx, http.MethodPut, "/contacts/"+contactID, nil, body)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Contact *Contact `json:"contact"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Contact, nil
}

// DeleteContact removes a contact.
func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/contacts/"+contactID, nil, nil)
	return err
}

// SearchContactsParams filters a contact search.
type SearchContactsParams struct {
	LocationID string
	Query      string
	Limit      int
}

// SearchContactsResult is a page of matching contacts.
type SearchContactsResult struct {
	Contacts []Contact `json:"contacts"`
	Total    int       `json:"total"`
}

// SearchContacts queries contacts by free-text search. Limit defaults to 25.
func (c *Client) SearchContacts(ctx context.Context, p SearchContactsParams) (*SearchContactsResult, error) {
	if p.Limit <= 0 {
		p.Limit = 25
	}
	body := compact(map[string]any{
		"locationId": c.defaultLocationID(p.LocationID),
		"query":      p.Query,
	})
	body["pageLimit"] = p.Limit
	data, err := c.do(ctx, http.MethodPost, "/contacts/search", nil, body)
	if err != nil {
		return nil, err
	}
	var result SearchContactsResult
	if err := decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpsertContact creates or updates a contact matched by email/phone.
func (c *Client) UpsertContact(ctx context.Context, p CreateContactParams) (*Contact, bool, error) {
	body := p.payload(c.defaultLocationID(p.LocationID))
	data, err := c.do(ctx, http.MethodPost, "/contacts/upsert", nil, body)
	if err != nil {
		return nil, false, err
	}
	var envelope struct {
		Contact *Contact `json:"contact"`
		New     bool     `json:"new"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, false, err
	}
	return envelope.Contact, envelope.New, nil
}

// AddContactTags adds tags to a contact and returns the resulting tag set.
func (c *Client) AddContactTags(ctx context.Context, contactID string, tags []string) ([]string, error) {
	data, err := c.do(ctx, http.MethodPost, "/contacts/"+contactID+"/tags", nil, map[string]any{"tags": tags})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Tags []string `json:"tags"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tags, nil
}

// RemoveContactTags removes tags from a contact and returns the remaining set.
func (c *Client) RemoveContactTags(ctx context.Context, contactID string, tags []string) ([]string, error) {
	data, err := c.do(ctx, http.MethodDelete, "/contacts/"+contactID+"/tags", nil, map[string]any{"tags": tags})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Tags []string `json:"tags"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tags, nil
}

// GetContactTasks lists a contact's tasks.
func (c *Client) GetContactTasks(ctx context.Context, contactID string) ([]Task, error) {
	data, err := c.do(ctx, http.MethodGet, "/contacts/"+contactID+"/tasks", nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Tasks []Task `json:"tasks"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tasks, nil
}

// TaskParams holds the writable task fields.
type TaskParams struct {
	Title      string
	Body       string
	DueDate    string
	Completed  *bool
	AssignedTo string
}

func (p TaskParams) payload() map[string]any {
	body := compact(map[string]any{
		"title":      p.Title,
		"body":       p.Body,
		"dueDate":    p.DueDate,
		"assignedTo": p.AssignedTo,
	})
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	return body
}

// CreateContactTask creates a task on a contact.
func (c *Client) CreateContactTask(ctx context.Context, contactID string, p TaskParams) (*Task, error) {
	data, err := c.do(ctx, http.MethodPost, "/contacts/"+contactID+"/tasks", nil, p.payload())
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Task *Task `json:"task"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Task, nil
}

// UpdateContactTask updates a task on a contact.
func (c *Client) UpdateContactTask(ctx context.Context, contactID, taskID string, p TaskParams) (*Task, error) {
	data, err := c.do(ctx, http.MethodPut, "/contacts/"+contactID+"/tasks/"+taskID, nil, p.payload())
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Task *Task `json:"task"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Task, nil
}

// DeleteContactTask removes a task from a contact.
func (c *Client) DeleteContactTask(ctx context.Context, contactID, taskID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/contacts/"+contactID+"/tasks/"+taskID, nil, nil)
	return err
}

// GetContactNotes lists a contact's notes.
func (c *Client) GetContactNotes(ctx context.Context, contactID string) ([]Note, error) {
	data, err := c.do(ctx, http.MethodGet, "/contacts/"+contactID+"/notes", nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Notes []Note `json:"notes"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Notes, nil
}

// CreateContactNote adds a note to a contact.
func (c *Client) CreateContactNote(ctx context.Context, contactID, body, userID string) (*Note, error) {
	payload := compact(map[string]any{"body": body, "userId": userID})
	data, err := c.do(ctx, http.MethodPost, "/contacts/"+contactID+"/notes", nil, payload)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Note *Note `json:"note"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Note, nil
}

// UpdateContactNote replaces the body of a note.
func (c *Client) UpdateContactNote(ctx context.Context, contactID, noteID, body string) (*Note, error) {
	data, err := c.do(ctx, http.MethodPut, "/contacts/"+contactID+"/notes/"+noteID, nil, map[string]any{"body": body})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Note *Note `json:"note"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Note, nil
}

// DeleteContactNote removes a note from a contact.
func (c *Client) DeleteContactNote(ctx context.Context, contactID, noteID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/contacts/"+contactID+"/notes/"+noteID, nil, nil)
	return err
}

// AddContactToWorkflow enrolls a contact in a workflow, optionally at a
// specific event start time (RFC3339).
func (c *Client) AddContactToWorkflow(ctx context.Context, contactID, workflowID, eventStartTime string) error {
	body := compact(map[string]any{"eventStartTime": eventStartTime})
	var payload any
	if len(body) > 0 {
		payload = body
	}
	_, err := c.do(ctx, http.MethodPost, "/contacts/"+contactID+"/workflow/"+workflowID, nil, payload)
	return err
}

// RemoveContactFromWorkflow removes a contact from a workflow.
func (c *Client) RemoveContactFromWorkflow(ctx context.Context, contactID, workflowID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/contacts/"+contactID+"/workflow/"+workflowID, nil, nil)
	return err
}

// listQuery renders common pagination values, applying defaults.
func listQuery(limit, skip, defLimit int) url.Values {
	if limit <= 0 {
		limit = defLimit
	}
	if skip < 0 {
		skip = 0
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	return q
}
