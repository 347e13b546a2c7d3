package tools

import (
	"context"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// CalendarTools covers calendar management, availability, and appointments.
type CalendarTools struct {
	client *ghl.Client
}

// NewCalendarTools creates the calendars module.
func NewCalendarTools(client *ghl.Client) *CalendarTools {
	return &CalendarTools{client: client}
}

// Name implements Module.
func (t *CalendarTools) Name() string { return "calendars" }

func (t *CalendarTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "get_calendar_groups",
				Description: "List calendar groups in a location",
				InputSchema: schema(map[string]Property{
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getGroups,
		},
		{
			tool: Tool{
				Name:        "get_calendars",
				Description: "List calendars, optionally restricted to a group",
				InputSchema: schema(map[string]Property{
					"groupId":    stringProp("Restrict to one calendar group"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getCalendars,
		},
		{
			tool: Tool{
				Name:        "create_calendar",
				Description: "Create a calendar",
				InputSchema: schema(map[string]Property{
					"name":         stringProp("Calendar name"),
					"description":  stringProp("Calendar description"),
					"groupId":      stringProp("Calendar group to place the calendar in"),
					"slug":         stringProp("URL slug for the booking page"),
					"slotDuration": numberPropDefault("Appointment slot length in minutes", 30),
					"calendarType": stringProp("Calendar type, e.g. round_robin, event"),
					"locationId":   stringProp("Location ID (uses the configured default when omitted)"),
				}, "name"),
			},
			handler: t.createCalendar,
		},
		{
			tool: Tool{
				Name:        "get_calendar",
				Description: "Get a calendar by ID",
				InputSchema: schema(map[string]Property{
					"calendarId": stringProp("The calendar's unique identifier"),
				}, "calendarId"),
			},
			handler: t.getCalendar,
		},
		{
			tool: Tool{
				Name:        "update_calendar",
				Description: "Update a calendar's settings",
				InputSchema: schema(map[string]Property{
					"calendarId":   stringProp("The calendar's unique identifier"),
					"name":         stringProp("Calendar name"),
					"description":  stringProp("Calendar description"),
					"slug":         stringProp("URL slug for the booking page"),
					"slotDuration": numberProp("Appointment slot length in minutes"),
				}, "calendarId"),
			},
			handler: t.updateCalendar,
		},
		{
			tool: Tool{
				Name:        "delete_calendar",
				Description: "Permanently delete a calendar",
				InputSchema: schema(map[string]Property{
					"calendarId": stringProp("The calendar's unique identifier"),
				}, "calendarId"),
			},
			handler: t.deleteCalendar,
		},
		{
			tool: Tool{
				Name:        "get_calendar_events",
				Description: "List calendar events within a time window",
				InputSchema: schema(map[string]Property{
					"startTime":  stringProp("Window start (ISO 8601 or epoch millis)"),
					"endTime":    stringProp("Window end (ISO 8601 or epoch millis)"),
					"calendarId": stringProp("Restrict to one calendar"),
					"userId":     stringProp("Restrict to one user's events"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "startTime", "endTime"),
			},
			handler: t.getEvents,
		},
		{
			tool: Tool{
				Name:        "get_free_slots",
				Description: "Get a calendar's free booking slots in a date range",
				InputSchema: schema(map[string]Property{
					"calendarId": stringProp("The calendar's unique identifier"),
					"startDate":  stringProp("Range start (epoch millis)"),
					"endDate":    stringProp("Range end (epoch millis)"),
					"timezone":   stringProp("IANA timezone for the returned slots"),
				}, "calendarId", "startDate", "endDate"),
			},
			handler: t.getFreeSlots,
		},
		{
			tool: Tool{
				Name:        "create_appointment",
				Description: "Book an appointment on a calendar",
				InputSchema: schema(map[string]Property{
					"calendarId": stringProp("Calendar to book on"),
					"contactId":  stringProp("Contact the appointment is for"),
					"title":      stringProp("Appointment title"),
					"startTime":  stringProp("Start time (ISO 8601)"),
					"endTime":    stringProp("End time (ISO 8601)"),
					"status":     enumProp("Appointment status", "new", "confirmed", "cancelled", "showed", "noshow"),
					"notes":      stringProp("Appointment notes"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "calendarId", "contactId", "startTime"),
			},
			handler: t.createAppointment,
		},
		{
			tool: Tool{
				Name:        "get_appointment",
				Description: "Get an appointment by event ID",
				InputSchema: schema(map[string]Property{
					"eventId": stringProp("The appointment event's unique identifier"),
				}, "eventId"),
			},
			handler: t.getAppointment,
		},
		{
			tool: Tool{
				Name:        "update_appointment",
				Description: "Update an appointment's time, title, or status",
				InputSchema: schema(map[string]Property{
					"eventId":   stringProp("The appointment event's unique identifier"),
					"title":     stringProp("Appointment title"),
					"startTime": stringProp("Start time (ISO 8601)"),
					"endTime":   stringProp("End time (ISO 8601)"),
					"status":    enumProp("Appointment status", "new", "confirmed", "cancelled", "showed", "noshow"),
					"notes":     stringProp("Appointment notes"),
				}, "eventId"),
			},
			handler: t.updateAppointment,
		},
		{
			tool: Tool{
				Name:        "delete_appointment",
				Description: "Cancel and remove an appointment",
				InputSchema: schema(map[string]Property{
					"eventId": stringProp("The appointment event's unique identifier"),
				}, "eventId"),
			},
			handler: t.deleteAppointment,
		},
	}
}

func (t *CalendarTools) getGroups(ctx context.Context, args Args) (*Result, error) {
	groups, err := t.client.GetCalendarGroups(ctx, args.String("locationId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar groups: %w", err)
	}
	return ok(fmt.Sprintf("Found %d calendar groups", len(groups)), groups), nil
}

func (t *CalendarTools) getCalendars(ctx context.Context, args Args) (*Result, error) {
	calendars, err := t.client.GetCalendars(ctx, args.String("locationId"), args.String("groupId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get calendars: %w", err)
	}
	return ok(fmt.Sprintf("Found %d calendars", len(calendars)), calendars), nil
}

func (t *CalendarTools) calendarParams(args Args) ghl.CalendarParams {
	return ghl.CalendarParams{
		LocationID:   args.String("locationId"),
		Name:         args.String("name"),
		Description:  args.String("description"),
		GroupID:      args.String("groupId"),
		Slug:         args.String("slug"),
		SlotDuration: args.Int("slotDuration"),
		CalendarType: args.String("calendarType"),
	}
}

func (t *CalendarTools) createCalendar(ctx context.Context, args Args) (*Result, error) {
	calendar, err := t.client.CreateCalendar(ctx, t.calendarParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar: %w", err)
	}
	return ok(fmt.Sprintf("Calendar created with ID %s", calendar.ID), calendar), nil
}

func (t *CalendarTools) getCalendar(ctx context.Context, args Args) (*Result, error) {
	calendar, err := t.client.GetCalendar(ctx, args.String("calendarId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved calendar %s", calendar.ID), calendar), nil
}

func (t *CalendarTools) updateCalendar(ctx context.Context, args Args) (*Result, error) {
	calendar, err := t.client.UpdateCalendar(ctx, args.String("calendarId"), t.calendarParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to update calendar: %w", err)
	}
	return ok(fmt.Sprintf("Calendar %s updated", calendar.ID), calendar), nil
}

func (t *CalendarTools) deleteCalendar(ctx context.Context, args Args) (*Result, error) {
	calendarID := args.String("calendarId")
	if err := t.client.DeleteCalendar(ctx, calendarID); err != nil {
		return nil, fmt.Errorf("failed to delete calendar: %w", err)
	}
	return ok(fmt.Sprintf("Calendar %s deleted", calendarID), nil), nil
}

func (t *CalendarTools) getEvents(ctx context.Context, args Args) (*Result, error) {
	events, err := t.client.GetCalendarEvents(ctx, ghl.GetCalendarEventsParams{
		LocationID: args.String("locationId"),
		CalendarID: args.String("calendarId"),
		UserID:     args.String("userId"),
		StartTime:  args.String("startTime"),
		EndTime:    args.String("endTime"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar events: %w", err)
	}
	return ok(fmt.Sprintf("Found %d events", len(events)), events), nil
}

func (t *CalendarTools) getFreeSlots(ctx context.Context, args Args) (*Result, error) {
	slots, err := t.client.GetFreeSlots(ctx, args.String("calendarId"), args.String("startDate"), args.String("endDate"), args.String("timezone"))
	if err != nil {
		return nil, fmt.Errorf("failed to get free slots: %w", err)
	}
	return ok("Free slots retrieved", slots), nil
}

func (t *CalendarTools) appointmentParams(args Args) ghl.AppointmentParams {
	return ghl.AppointmentParams{
		LocationID: args.String("locationId"),
		CalendarID: args.String("calendarId"),
		ContactID:  args.String("contactId"),
		Title:      args.String("title"),
		StartTime:  args.String("startTime"),
		EndTime:    args.String("endTime"),
		Status:     args.String("status"),
		Notes:      args.String("notes"),
	}
}

func (t *CalendarTools) createAppointment(ctx context.Context, args Args) (*Result, error) {
	event, err := t.client.CreateAppointment(ctx, t.appointmentParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return ok(fmt.Sprintf("Appointment created with ID %s", event.ID), event), nil
}

func (t *CalendarTools) getAppointment(ctx context.Context, args Args) (*Result, error) {
	event, err := t.client.GetAppointment(ctx, args.String("eventId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved appointment %s", event.ID), event), nil
}

func (t *CalendarTools) updateAppointment(ctx context.Context, args Args) (*Result, error) {
	event, err := t.client.UpdateAppointment(ctx, args.String("eventId"), t.appointmentParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return ok(fmt.Sprintf("Appointment %s updated", event.ID), event), nil
}

func (t *CalendarTools) deleteAppointment(ctx context.Context, args Args) (*Result, error) {
	eventID := args.String("eventId")
	if err := t.client.DeleteAppointment(ctx, eventID); err != nil {
		return nil, fmt.Errorf("failed to delete appointment: %w", err)
	}
	return ok(fmt.Sprintf("Appointment %s deleted", eventID), nil), nil
}
