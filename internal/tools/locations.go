package tools

import (
	"context"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// LocationTools covers sub-account management: location CRUD, tags, custom
// values, custom fields, timezones, and location-wide task search.
type LocationTools struct {
	client *ghl.Client
}

// NewLocationTools creates the locations module.
func NewLocationTools(client *ghl.Client) *LocationTools {
	return &LocationTools{client: client}
}

// Name implements Module.
func (t *LocationTools) Name() string { return "locations" }

func (t *LocationTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "search_locations",
				Description: "List locations (sub-accounts), optionally filtered by company or email",
				InputSchema: schema(map[string]Property{
					"companyId": stringProp("Restrict to one company's locations"),
					"email":     stringProp("Match a location's email address"),
					"limit":     numberPropDefault("Maximum number of results", 10),
					"skip":      numberPropDefault("Number of results to skip", 0),
					"order":     enumProp("Sort direction", "asc", "desc"),
				}),
			},
			handler: t.searchLocations,
		},
		{
			tool: Tool{
				Name:        "get_location",
				Description: "Get a location's details",
				InputSchema: schema(map[string]Property{
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getLocation,
		},
		{
			tool: Tool{
				Name:        "create_location",
				Description: "Create a new location (sub-account)",
				InputSchema: schema(map[string]Property{
					"name":     stringProp("Business name"),
					"address":  stringProp("Street address"),
					"city":     stringProp("City"),
					"state":    stringProp("State or region"),
					"country":  stringProp("Two-letter country code"),
					"timezone": stringProp("IANA timezone, e.g. America/New_York"),
					"email":    stringProp("Business email"),
					"phone":    stringProp("Business phone"),
					"website":  stringProp("Business website URL"),
				}, "name"),
			},
			handler: t.createLocation,
		},
		{
			tool: Tool{
				Name:        "update_location",
				Description: "Update a location's details",
				InputSchema: schema(map[string]Property{
					"locationId": stringProp("The location's unique identifier"),
					"name":       stringProp("Business name"),
					"address":    stringProp("Street address"),
					"city":       stringProp("City"),
					"state":      stringProp("State or region"),
					"country":    stringProp("Two-letter country code"),
					"timezone":   stringProp("IANA timezone"),
					"email":      stringProp("Business email"),
					"phone":      stringProp("Business phone"),
					"website":    stringProp("Business website URL"),
				}, "locationId"),
			},
			handler: t.updateLocation,
		},
		{
			tool: Tool{
				Name:        "delete_location",
				Description: "Permanently delete a location",
				InputSchema: schema(map[string]Property{
					"locationId": stringProp("The location's unique identifier"),
				}, "locationId"),
			},
			handler: t.deleteLocation,
		},
		{
			tool: Tool{
				Name:        "get_location_tags",
				Description: "List a location's contact tags",
				InputSchema: schema(map[string]Property{
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getTags,
		},
		{
			tool: Tool{
				Name:        "create_location_tag",
				Description: "Create a contact tag in a location",
				InputSchema: schema(map[string]Property{
					"name":       stringProp("Tag name"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "name"),
			},
			handler: t.createTag,
		},
		{
			tool: Tool{
				Name:        "get_location_tag",
				Description: "Get a single tag by ID",
				InputSchema: schema(map[string]Property{
					"tagId":      stringProp("The tag's unique identifier"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "tagId"),
			},
			handler: t.getTag,
		},
		{
			tool: Tool{
				Name:        "update_location_tag",
				Description: "Rename a tag",
				InputSchema: schema(map[string]Property{
					"tagId":      stringProp("The tag's unique identifier"),
					"name":       stringProp("New tag name"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "tagId", "name"),
			},
			handler: t.updateTag,
		},
		{
			tool: Tool{
				Name:        "delete_location_tag",
				Description: "Delete a tag from a location",
				InputSchema: schema(map[string]Property{
					"tagId":      stringProp("The tag's unique identifier"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "tagId"),
			},
			handler: t.deleteTag,
		},
		{
			tool: Tool{
				Name:        "get_custom_values",
				Description: "List a location's custom values",
				InputSchema: schema(map[string]Property{
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getCustomValues,
		},
		{
			tool: Tool{
				Name:        "create_custom_value",
				Description: "Create a named custom value in a location",
				InputSchema: schema(map[string]Property{
					"name":       stringProp("Custom value name"),
					"value":      stringProp("Stored value"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "name", "value"),
			},
			handler: t.createCustomValue,
		},
		{
			tool: Tool{
				Name:        "get_custom_value",
				Description: "Get a custom value by ID",
				InputSchema: schema(map[string]Property{
					"customValueId": stringProp("The custom value's unique identifier"),
					"locationId":    stringProp("Location ID (uses the configured default when omitted)"),
				}, "customValueId"),
			},
			handler: t.getCustomValue,
		},
		{
			tool: Tool{
				Name:        "update_custom_value",
				Description: "Update a custom value's name or value",
				InputSchema: schema(map[string]Property{
					"customValueId": stringProp("The custom value's unique identifier"),
					"name":          stringProp("Custom value name"),
					"value":         stringProp("Stored value"),
					"locationId":    stringProp("Location ID (uses the configured default when omitted)"),
				}, "customValueId", "name", "value"),
			},
			handler: t.updateCustomValue,
		},
		{
			tool: Tool{
				Name:        "delete_custom_value",
				Description: "Delete a custom value from a location",
				InputSchema: schema(map[string]Property{
					"customValueId": stringProp("The custom value's unique identifier"),
					"locationId":    stringProp("Location ID (uses the configured default when omitted)"),
				}, "customValueId"),
			},
			handler: t.deleteCustomValue,
		},
		{
			tool: Tool{
				Name:        "get_custom_fields",
				Description: "List a location's custom field definitions",
				InputSchema: schema(map[string]Property{
					"model":      enumProp("Restrict to one object model", "contact", "opportunity"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.getCustomFields,
		},
		{
			tool: Tool{
				Name:        "create_custom_field",
				Description: "Create a custom field definition",
				InputSchema: schema(map[string]Property{
					"name":       stringProp("Field name"),
					"dataType":   stringProp("Field data type, e.g. TEXT, NUMERICAL, SINGLE_OPTIONS"),
					"model":      enumProp("Object model the field attaches to", "contact", "opportunity"),
					"options":    stringArrayProp("Picklist options for option-typed fields"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "name", "dataType"),
			},
			handler: t.createCustomField,
		},
		{
			tool: Tool{
				Name:        "get_custom_field",
				Description: "Get a custom field definition by ID",
				InputSchema: schema(map[string]Property{
					"customFieldId": stringProp("The custom field's unique identifier"),
					"locationId":    stringProp("Location ID (uses the configured default when omitted)"),
				}, "customFieldId"),
			},
			handler: t.getCustomField,
		},
		{
			tool: Tool{
				Name:        "update_custom_field",
				Description: "Update a custom field definition",
				InputSchema: schema(map[string]Property{
					"customFieldId": stringProp("The custom field's unique identifier"),
					"name":          stringProp("Field name"),
					"dataType":      stringProp("Field data type"),
					"options":       stringArrayProp("Picklist options for option-typed fields"),
					"locationId":    stringProp("Location ID (uses the configured default when omitted)"),
				}, "customFieldId"),
			},
			handler: t.updateCustomField,
		},
		{
			tool: Tool{
				Name:        "delete_custom_field",
				Description: "Delete a custom field definition",
				InputSchema: schema(map[string]Property{
					"customFieldId": stringProp("The custom field's unique identifier"),
					"locationId":    stringProp("Location ID (uses the configured default when omitted)"),
				}, "customFieldId"),
			},
			handler: t.deleteCustomField,
		},
		{
			tool: Tool{
				Name:        "get_timezones",
				Description: "List the timezones the platform accepts",
				InputSchema: schema(map[string]Property{}),
			},
			handler: t.getTimezones,
		},
		{
			tool: Tool{
				Name:        "search_location_tasks",
				Description: "Search tasks across all contacts of a location",
				InputSchema: schema(map[string]Property{
					"query":      stringProp("Free-text search over task titles"),
					"contactIds": stringArrayProp("Restrict to these contacts"),
					"assignedTo": stringArrayProp("Restrict to tasks assigned to these users"),
					"completed":  boolProp("Filter by completion state"),
					"limit":      numberPropDefault("Maximum number of results", 25),
					"skip":       numberPropDefault("Number of results to skip", 0),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.searchTasks,
		},
	}
}

func (t *LocationTools) locationParams(args Args) ghl.LocationParams {
	return ghl.LocationParams{
		Name:     args.String("name"),
		Address:  args.String("address"),
		City:     args.String("city"),
		State:    args.String("state"),
		Country:  args.String("country"),
		Timezone: args.String("timezone"),
		Email:    args.String("email"),
		Phone:    args.String("phone"),
		Website:  args.String("website"),
	}
}

func (t *LocationTools) searchLocations(ctx context.Context, args Args) (*Result, error) {
	locations, err := t.client.SearchLocations(ctx, ghl.SearchLocationsParams{
		CompanyID: args.String("companyId"),
		Email:     args.String("email"),
		Limit:     args.Int("limit"),
		Skip:      args.Int("skip"),
		Order:     args.String("order"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search locations: %w", err)
	}
	return ok(fmt.Sprintf("Found %d locations", len(locations)), locations), nil
}

func (t *LocationTools) getLocation(ctx context.Context, args Args) (*Result, error) {
	location, err := t.client.GetLocation(ctx, args.String("locationId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved location %s", location.ID), location), nil
}

func (t *LocationTools) createLocation(ctx context.Context, args Args) (*Result, error) {
	location, err := t.client.CreateLocation(ctx, t.locationParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return ok(fmt.Sprintf("Location created with ID %s", location.ID), location), nil
}

func (t *LocationTools) updateLocation(ctx context.Context, args Args) (*Result, error) {
	location, err := t.client.UpdateLocation(ctx, args.String("locationId"), t.locationParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return ok(fmt.Sprintf("Location %s updated", location.ID), location), nil
}

func (t *LocationTools) deleteLocation(ctx context.Context, args Args) (*Result, error) {
	locationID := args.String("locationId")
	if err := t.client.DeleteLocation(ctx, locationID); err != nil {
		return nil, fmt.Errorf("failed to delete location: %w", err)
	}
	return ok(fmt.Sprintf("Location %s deleted", locationID), nil), nil
}

func (t *LocationTools) getTags(ctx context.Context, args Args) (*Result, error) {
	tags, err := t.client.GetLocationTags(ctx, args.String("locationId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get location tags: %w", err)
	}
	return ok(fmt.Sprintf("Found %d tags", len(tags)), tags), nil
}

func (t *LocationTools) createTag(ctx context.Context, args Args) (*Result, error) {
	tag, err := t.client.CreateLocationTag(ctx, args.String("locationId"), args.String("name"))
	if err != nil {
		return nil, fmt.Errorf("failed to create location tag: %w", err)
	}
	return ok(fmt.Sprintf("Tag created with ID %s", tag.ID), tag), nil
}

func (t *LocationTools) getTag(ctx context.Context, args Args) (*Result, error) {
	tag, err := t.client.GetLocationTag(ctx, args.String("locationId"), args.String("tagId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get location tag: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved tag %s", tag.ID), tag), nil
}

func (t *LocationTools) updateTag(ctx context.Context, args Args) (*Result, error) {
	tag, err := t.client.UpdateLocationTag(ctx, args.String("locationId"), args.String("tagId"), args.String("name"))
	if err != nil {
		return nil, fmt.Errorf("failed to update location tag: %w", err)
	}
	return ok(fmt.Sprintf("Tag %s renamed to %s", tag.ID, tag.Name), tag), nil
}

func (t *LocationTools) deleteTag(ctx context.Context, args Args) (*Result, error) {
	tagID := args.String("tagId")
	if err := t.client.DeleteLocationTag(ctx, args.String("locationId"), tagID); err != nil {
		return nil, fmt.Errorf("failed to delete location tag: %w", err)
	}
	return ok(fmt.Sprintf("Tag %s deleted", tagID), nil), nil
}

func (t *LocationTools) getCustomValues(ctx context.Context, args Args) (*Result, error) {
	values, err := t.client.GetCustomValues(ctx, args.String("locationId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get custom values: %w", err)
	}
	return ok(fmt.Sprintf("Found %d custom values", len(values)), values), nil
}

func (t *LocationTools) createCustomValue(ctx context.Context, args Args) (*Result, error) {
	value, err := t.client.CreateCustomValue(ctx, args.String("locationId"), args.String("name"), args.String("value"))
	if err != nil {
		return nil, fmt.Errorf("failed to create custom value: %w", err)
	}
	return ok(fmt.Sprintf("Custom value created with ID %s", value.ID), value), nil
}

func (t *LocationTools) getCustomValue(ctx context.Context, args Args) (*Result, error) {
	value, err := t.client.GetCustomValue(ctx, args.String("locationId"), args.String("customValueId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get custom value: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved custom value %s", value.ID), value), nil
}

func (t *LocationTools) updateCustomValue(ctx context.Context, args Args) (*Result, error) {
	value, err := t.client.UpdateCustomValue(ctx, args.String("locationId"), args.String("customValueId"), args.String("name"), args.String("value"))
	if err != nil {
		return nil, fmt.Errorf("failed to update custom value: %w", err)
	}
	return ok(fmt.Sprintf("Custom value %s updated", value.ID), value), nil
}

func (t *LocationTools) deleteCustomValue(ctx context.Context, args Args) (*Result, error) {
	customValueID := args.String("customValueId")
	if err := t.client.DeleteCustomValue(ctx, args.String("locationId"), customValueID); err != nil {
		return nil, fmt.Errorf("failed to delete custom value: %w", err)
	}
	return ok(fmt.Sprintf("Custom value %s deleted", customValueID), nil), nil
}

func (t *LocationTools) getCustomFields(ctx context.Context, args Args) (*Result, error) {
	fields, err := t.client.GetCustomFields(ctx, args.String("locationId"), args.String("model"))
	if err != nil {
		return nil, fmt.Errorf("failed to get custom fields: %w", err)
	}
	return ok(fmt.Sprintf("Found %d custom fields", len(fields)), fields), nil
}

func (t *LocationTools) customFieldParams(args Args) ghl.CustomFieldParams {
	return ghl.CustomFieldParams{
		Name:     args.String("name"),
		DataType: args.String("dataType"),
		Model:    args.String("model"),
		Options:  args.StringSlice("options"),
	}
}

func (t *LocationTools) createCustomField(ctx context.Context, args Args) (*Result, error) {
	field, err := t.client.CreateCustomField(ctx, args.String("locationId"), t.customFieldParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to create custom field: %w", err)
	}
	return ok(fmt.Sprintf("Custom field created with ID %s", field.ID), field), nil
}

func (t *LocationTools) getCustomField(ctx context.Context, args Args) (*Result, error) {
	field, err := t.client.GetCustomField(ctx, args.String("locationId"), args.String("customFieldId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get custom field: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved custom field %s", field.ID), field), nil
}

func (t *LocationTools) updateCustomField(ctx context.Context, args Args) (*Result, error) {
	field, err := t.client.UpdateCustomField(ctx, args.String("locationId"), args.String("customFieldId"), t.customFieldParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to update custom field: %w", err)
	}
	return ok(fmt.Sprintf("Custom field %s updated", field.ID), field), nil
}

func (t *LocationTools) deleteCustomField(ctx context.Context, args Args) (*Result, error) {
	customFieldID := args.String("customFieldId")
	if err := t.client.DeleteCustomField(ctx, args.String("locationId"), customFieldID); err != nil {
		return nil, fmt.Errorf("failed to delete custom field: %w", err)
	}
	return ok(fmt.Sprintf("Custom field %s deleted", customFieldID), nil), nil
}

func (t *LocationTools) getTimezones(ctx context.Context, _ Args) (*Result, error) {
	timezones, err := t.client.GetTimezones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get timezones: %w", err)
	}
	return ok(fmt.Sprintf("Found %d timezones", len(timezones)), timezones), nil
}

func (t *LocationTools) searchTasks(ctx context.Context, args Args) (*Result, error) {
	p := ghl.SearchLocationTasksParams{
		LocationID: args.String("locationId"),
		ContactIDs: args.StringSlice("contactIds"),
		AssignedTo: args.StringSlice("assignedTo"),
		Query:      args.String("query"),
		Limit:      args.Int("limit"),
		Skip:       args.Int("skip"),
	}
	if args.Has("completed") {
		completed := args.Bool("completed")
		p.Completed = &completed
	}
	tasks, err := t.client.SearchLocationTasks(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to search location tasks: %w", err)
	}
	return ok(fmt.Sprintf("Found %d tasks", len(tasks)), tasks), nil
}
