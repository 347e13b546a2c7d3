package ghl

import (
	"context"
	"net/http"
	"net/url"
)

// CalendarGroup is a grouping of calendars within a location.
type CalendarGroup struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug,omitempty"`
	LocationID string `json:"locationId,omitempty"`
	IsActive   bool   `json:"isActive,omitempty"`
}

// Calendar is a bookable calendar.
type Calendar struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LocationID  string `json:"locationId,omitempty"`
	GroupID     string `json:"groupId,omitempty"`
	Slug        string `json:"slug,omitempty"`
	WidgetType  string `json:"widgetType,omitempty"`
	IsActive    bool   `json:"isActive,omitempty"`
}

// CalendarEvent is a booked slot (appointment or block) on a calendar.
type CalendarEvent struct {
	ID             string `json:"id"`
	CalendarID     string `json:"calendarId,omitempty"`
	LocationID     string `json:"locationId,omitempty"`
	ContactID      string `json:"contactId,omitempty"`
	Title          string `json:"title,omitempty"`
	Status         string `json:"appointmentStatus,omitempty"`
	StartTime      string `json:"startTime,omitempty"`
	EndTime        string `json:"endTime,omitempty"`
	AssignedUserID string `json:"assignedUserId,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// GetCalendarGroups lists the calendar groups of a location.
func (c *Client) GetCalendarGroups(ctx context.Context, locationID string) ([]CalendarGroup, error) {
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(locationID))
	data, err := c.do(ctx, http.MethodGet, "/calendars/groups", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Groups []CalendarGroup `json:"groups"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Groups, nil
}

// GetCalendars lists the calendars of a location.
func (c *Client) GetCalendars(ctx context.Context, locationID, groupID string) ([]Calendar, error) {
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(locationID))
	if groupID != "" {
		q.Set("groupId", groupID)
	}
	data, err := c.do(ctx, http.MethodGet, "/calendars/", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Calendars []Calendar `json:"calendars"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Calendars, nil
}

// CalendarParams holds the writable calendar fields.
type CalendarParams struct {
	LocationID   string
	Name         string
	Description  string
	GroupID      string
	Slug         string
	SlotDuration int // minutes
	CalendarType string
}

func (p CalendarParams) payload(locationID string) map[string]any {
	body := compact(map[string]any{
		"locationId":   locationID,
		"name":         p.Name,
		"description":  p.Description,
		"groupId":      p.GroupID,
		"slug":         p.Slug,
		"calendarType": p.CalendarType,
	})
	if p.SlotDuration > 0 {
		body["slotDuration"] = p.SlotDuration
	}
	return body
}

// CreateCalendar creates a calendar.
func (c *Client) CreateCalendar(ctx context.Context, p CalendarParams) (*Calendar, error) {
	data, err := c.do(ctx, http.MethodPost, "/calendars/", nil, p.payload(c.defaultLocationID(p.LocationID)))
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Calendar *Calendar `json:"calendar"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Calendar, nil
}

// GetCalendar fetches one calendar by ID.
func (c *Client) GetCalendar(ctx context.Context, calendarID string) (*Calendar, error) {
	data, err := c.do(ctx, http.MethodGet, "/calendars/"+calendarID, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Calendar *Calendar `json:"calendar"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Calendar, nil
}

// UpdateCalendar applies the non-empty fields of p to a calendar.
func (c *Client) UpdateCalendar(ctx context.Context, calendarID string, p CalendarParams) (*Calendar, error) {
	body := p.payload("")
	delete(body, "locationId")
	data, err := c.do(ctx, http.MethodPut, "/calendars/"+calendarID, nil, body)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Calendar *Calendar `json:"calendar"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Calendar, nil
}

// DeleteCalendar removes a calendar.
func (c *Client) DeleteCalendar(ctx context.Context, calendarID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/calendars/"+calendarID, nil, nil)
	return err
}

// GetCalendarEventsParams bounds an event listing. StartTime and EndTime are
// epoch milliseconds, as the remote API expects.
type GetCalendarEventsParams struct {
	LocationID string
	CalendarID string
	UserID     string
	StartTime  string
	EndTime    string
}

// GetCalendarEvents lists events in a time window.
func (c *Client) GetCalendarEvents(ctx context.Context, p GetCalendarEventsParams) ([]CalendarEvent, error) {
	q := url.Values{}
	q.Set("locationId", c.defaultLocationID(p.LocationID))
	q.Set("startTime", p.StartTime)
	q.Set("endTime", p.EndTime)
	if p.CalendarID != "" {
		q.Set("calendarId", p.CalendarID)
	}
	if p.UserID != "" {
		q.Set("userId", p.UserID)
	}
	data, err := c.do(ctx, http.MethodGet, "/calendars/events", q, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Events []CalendarEvent `json:"events"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Events, nil
}

// GetFreeSlots returns available booking slots for a calendar, keyed by date.
func (c *Client) GetFreeSlots(ctx context.Context, calendarID, startDate, endDate, timezone string) (map[string]any, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	if timezone != "" {
		q.Set("timezone", timezone)
	}
	data, err := c.do(ctx, http.MethodGet, "/calendars/"+calendarID+"/free-slots", q, nil)
	if err != nil {
		return nil, err
	}
	var slots map[string]any
	if err := decode(data, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// AppointmentParams holds the writable appointment fields.
type AppointmentParams struct {
	LocationID string
	CalendarID string
	ContactID  string
	Title      string
	StartTime  string
	EndTime    string
	Status     string // confirmed, cancelled, showed, noshow, new
	Notes      string
}

func (p AppointmentParams) payload(locationID string) map[string]any {
	return compact(map[string]any{
		"locationId":        locationID,
		"calendarId":        p.CalendarID,
		"contactId":         p.ContactID,
		"title":             p.Title,
		"startTime":         p.StartTime,
		"endTime":           p.EndTime,
		"appointmentStatus": p.Status,
		"notes":             p.Notes,
	})
}

// CreateAppointment books an appointment.
func (c *Client) CreateAppointment(ctx context.Context, p AppointmentParams) (*CalendarEvent, error) {
	data, err := c.do(ctx, http.MethodPost, "/calendars/events/appointments", nil, p.payload(c.defaultLocationID(p.LocationID)))
	if err != nil {
		return nil, err
	}
	var event CalendarEvent
	if err := decode(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetAppointment fetches one appointment by event ID.
func (c *Client) GetAppointment(ctx context.Context, eventID string) (*CalendarEvent, error) {
	data, err := c.do(ctx, http.MethodGet, "/calendars/events/appointments/"+eventID, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Event *CalendarEvent `json:"event"`
	}
	if err := decode(data, &envelope); err != nil {
		return nil, err
	}
	return envelope.Event, nil
}

// UpdateAppointment applies the non-empty fields of p to an appointment.
func (c *Client) UpdateAppointment(ctx context.Context, eventID string, p AppointmentParams) (*CalendarEvent, error) {
	body := p.payload("")
	delete(body, "locationId")
	data, err := c.do(ctx, http.MethodPut, "/calendars/events/appointments/"+eventID, nil, body)
	if err != nil {
		return nil, err
	}
	var event CalendarEvent
	if err := decode(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteAppointment cancels and removes a calendar event.
func (c *Client) DeleteAppointment(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/calendars/events/"+eventID, nil, nil)
	return err
}
