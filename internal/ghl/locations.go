package ghl

import (
	"context"
	"net/http"
	"net/url"
)

// Location is a sub-account on the platform.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Website  string `json:"website,omitempty"`
}

// LocationTag is a tag scoped to a location.
type LocationTag struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LocationID string `json:"locationId,omitempty"`
}

// CustomValue is a location-scoped template value.
type CustomValue struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FieldKey   string `json:"fieldKey,omitempty"`
	Value      string `json:"value,omitempty"`
	LocationID string `json:"locationId,omitempty"`
}

// CustomField is a location-defined contact/opportunity field.
type CustomField struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	FieldKey   string   `json:"fieldKey,omitempty"`
	DataType   string   `json:"dataType,omitempty"`
	Model      string   `json:"model,omitempty"` // "contact" | "opportunity"
	Options    []string `json:"picklistOptions,omitempty"`
	LocationID string   `json:"locationId,omitempty"`
}

// SearchLocationsParams filters a location search. Zero values take the
// documented defaults.
type SearchLocationsParams struct {
	CompanyID string
	Email     string
	Limit     int    // default 10
	Skip      int    // default 0
	Order     string // default "asc"
}

// SearchLocations lists locations matching the filters.
func (c *Client) SearchLocations(ctx context.Context, p SearchLocationsParams) ([]Location, error) {
	q := listQuery(p.Limit, p.Skip, 10)
	if p.Order == "" {
		p.Order = "asc"
	}
	q.Set("order", p.Order)
	if p.CompanyID != "" {
		q.Set("companyId", p.CompanyID)
	}
	if p.Email != "" {
		q.Set("email", p.Email)
	}
	data, err := c.do(ctx, http.MethodGet, "/locations/search", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Locations []Location `json:"locations"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Locations, nil
}

// GetLocation fetches one location by ID.
func (c *Client) GetLocation(ctx context.Context, locationID string) (*Location, error) {
	data, err := c.do(ctx, http.MethodGet, "/locations/"+c.defaultLocationID(locationID), nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Location *Location `json:"location"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Location, nil
}

// LocationParams holds the writable location fields.
type LocationParams struct {
	Name     string
	Address  string
	City     string
	State    string
	Country  string
	Timezone string
	Email    string
	Phone    string
	Website  string
}

func (p LocationParams) payload() map[string]any {
	return compact(map[string]any{
		"name":     p.Name,
		"address":  p.Address,
		"city":     p.City,
		"state":    p.State,
		"country":  p.Country,
		"timezone": p.Timezone,
		"email":    p.Email,
		"phone":    p.Phone,
		"website":  p.Website,
	})
}

// CreateLocation creates a sub-account.
func (c *Client) CreateLocation(ctx context.Context, p LocationParams) (*Location, error) {
	data, err := c.do(ctx, http.MethodPost, "/locations/", nil, p.payload())
	if err != nil {
		return nil, err
	}
	var loc Location
	if err := decode(data, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// UpdateLocation applies the non-empty fields of p to a location.
func (c *Client) UpdateLocation(ctx context.Context, locationID string, p LocationParams) (*Location, error) {
	data, err := c.do(ctx, http.MethodPut, "/locations/"+locationID, nil, p.payload())
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Location *Location `json:"location"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Location, nil
}

// DeleteLocation removes a sub-account.
func (c *Client) DeleteLocation(ctx context.Context, locationID string) error {
	q := url.Values{}
	q.Set("deleteTwilioAccount", "false")
	_, err := c.do(ctx, http.MethodDelete, "/locations/"+locationID, q, nil)
	return err
}

// GetLocationTags lists a location's tags.
func (c *Client) GetLocationTags(ctx context.Context, locationID string) ([]LocationTag, error) {
	data, err := c.do(ctx, http.MethodGet, "/locations/"+c.defaultLocationID(locationID)+"/tags", nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Tags []LocationTag `json:"tags"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tags, nil
}

// CreateLocationTag creates a tag in a location.
func (c *Client) CreateLocationTag(ctx context.Context, locationID, name string) (*LocationTag, error) {
	data, err := c.do(ctx, http.MethodPost, "/locations/"+c.defaultLocationID(locationID)+"/tags", nil,
		map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Tag *LocationTag `json:"tag"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tag, nil
}

// GetLocationTag fetches one tag by ID.
func (c *Client) GetLocationTag(ctx context.Context, locationID, tagID string) (*LocationTag, error) {
	data, err := c.do(ctx, http.MethodGet, "/locations/"+c.defaultLocationID(locationID)+"/tags/"+tagID, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Tag *LocationTag `json:"tag"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tag, nil
}

// UpdateLocationTag renames a tag.
func (c *Client) UpdateLocationTag(ctx context.Context, locationID, tagID, name string) (*LocationTag, error) {
	data, err := c.do(ctx, http.MethodPut, "/locations/"+c.defaultLocationID(locationID)+"/tags/"+tagID, nil,
		map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Tag *LocationTag `json:"tag"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tag, nil
}

// DeleteLocationTag removes a tag from a location.
func (c *Client) DeleteLocationTag(ctx context.Context, locationID, tagID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/locations/"+c.defaultLocationID(locationID)+"/tags/"+tagID, nil, nil)
	return err
}

// GetCustomValues lists a location's custom values.
func (c *Client) GetCustomValues(ctx context.Context, locationID string) ([]CustomValue, error) {
	data, err := c.do(ctx, http.MethodGet, "/locations/"+c.defaultLocationID(locationID)+"/customValues", nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CustomValues []CustomValue `json:"customValues"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.CustomValues, nil
}

// CreateCustomValue creates a named custom value.
func (c *Client) CreateCustomValue(ctx context.Context, locationID, name, value string) (*CustomValue, error) {
	data, err := c.do(ctx, http.MethodPost, "/locations/"+c.defaultLocationID(locationID)+"/customValues", nil,
		map[string]any{"name": name, "value": value})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CustomValue *CustomValue `json:"customValue"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.CustomValue, nil
}

// GetCustomValue fetches one custom value by ID.
func (c *Client) GetCustomValue(ctx context.Context, locationID, customValueID string) (*CustomValue, error) {
	data, err := c.do(ctx, http.MethodGet, "/locations/"+c.defaultLocationID(locationID)+"/customValues/"+customValueID, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CustomValue *CustomValue `json:"customValue"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.CustomValue, nil
}

// UpdateCustomValue replaces a custom value's name and value.
func (c *Client) UpdateCustomValue(ctx context.Context, locationID, customValueID, name, value string) (*CustomValue, error) {
	data, err := c.do(ctx, http.MethodPut, "/locations/"+c.defaultLocationID(locationID)+"/customValues/"+customValueID, nil,
		map[string]any{"name": name, "value": value})
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CustomValue *CustomValue `json:"customValue"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.CustomValue, nil
}

// DeleteCustomValue removes a custom value.
func (c *Client) DeleteCustomValue(ctx context.Context, locationID, customValueID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/locations/"+c.defaultLocationID(locationID)+"/customValues/"+customValueID, nil, nil)
	return err
}

// CustomFieldParams holds the writable custom field attributes.
type CustomFieldParams struct {
	Name     string
	DataType string // TEXT, NUMERICAL, PHONE, MONETORY, CHECKBOX, SINGLE_OPTIONS, ...
	Model    string // "contact" | "opportunity"
	Options  []string
}

func (p CustomFieldParams) payload() map[string]any {
	return compact(map[string]any{
		"name":            p.Name,
		"dataType":        p.DataType,
		"model":           p.Model,
		"picklistOptions": p.Options,
	})
}

// GetCustomFields lists a location's custom field definitions, optionally
// filtered by model.
func (c *Client) GetCustomFields(ctx context.Context, locationID, model string) ([]CustomField, error) {
	q := url.Values{}
	if model != "" {
		q.Set("model", model)
	}
	data, err := c.do(ctx, http.MethodGet, "/locations/"+c.defaultLocationID(locationID)+"/customFields", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CustomFields []CustomField `json:"customFields"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.CustomFields, nil
}

// CreateCustomField defines a new custom field.
func (c *Client) CreateCustomField(ctx context.Context, locationID string, p CustomFieldParams) (*CustomField, error) {
	data, err := c.do(ctx, http.MethodPost, "/locations/"+c.defaultLocationID(locationID)+"/customFields", nil, p.payload())
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CustomField *CustomField `json:"customField"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.CustomField, nil
}

// GetCustomField fetches one custom field definition by ID.
func (c *Client) GetCustomField(ctx context.Context, locationID, customFieldID string) (*CustomField, error) {
	data, err := c.do(ctx, http.MethodGet, "/locations/"+c.defaultLocationID(locationID)+"/customFields/"+customFieldID, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CustomField *CustomField `json:"customField"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.CustomField, nil
}

// UpdateCustomField modifies a custom field definition.
func (c *Client) UpdateCustomField(ctx context.Context, locationID, customFieldID string, p CustomFieldParams) (*CustomField, error) {
	data, err := c.do(ctx, http.MethodPut, "/locations/"+c.defaultLocationID(locationID)+"/customFields/"+customFieldID, nil, p.payload())
	if err != nil {
		return nil, err
	}
	var envelope struct {
		CustomField *CustomField `json:"customField"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.CustomField, nil
}

// DeleteCustomField removes a custom field definition.
func (c *Client) DeleteCustomField(ctx context.Context, locationID, customFieldID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/locations/"+c.defaultLocationID(locationID)+"/customFields/"+customFieldID, nil, nil)
	return err
}

// GetTimezones lists the timezone identifiers the platform accepts.
func (c *Client) GetTimezones(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/locations/timezones", nil, nil)
	if err != nil {
		return nil, err
	}
	var zones []string
	if err := decode(data, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// SearchLocationTasksParams filters a location-wide task search.
type SearchLocationTasksParams struct {
	LocationID string
	ContactIDs []string
	Completed  *bool
	AssignedTo []string
	Query      string
	Limit      int
	Skip       int
}

// SearchLocationTasks searches tasks across all contacts of a location.
func (c *Client) SearchLocationTasks(ctx context.Context, p SearchLocationTasksParams) ([]Task, error) {
	if p.Limit <= 0 {
		p.Limit = 25
	}
	body := compact(map[string]any{
		"contactId":  p.ContactIDs,
		"assignedTo": p.AssignedTo,
		"query":      p.Query,
	})
	body["limit"] = p.Limit
	body["skip"] = p.Skip
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	data, err := c.do(ctx, http.MethodPost, "/locations/"+c.defaultLocationID(p.LocationID)+"/tasks/search", nil, body)
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
