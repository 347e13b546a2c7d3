package tools

import (
	"context"
	"fmt"

	"github.com/samuzaffar99/GoHighLevel-MCP/internal/ghl"
)

// ContactTools covers contact CRUD, tags, tasks, and notes.
type ContactTools struct {
	client *ghl.Client
}

// NewContactTools creates the contacts module.
func NewContactTools(client *ghl.Client) *ContactTools {
	return &ContactTools{client: client}
}

// Name implements Module.
func (t *ContactTools) Name() string { return "contacts" }

func (t *ContactTools) bindings() []binding {
	return []binding{
		{
			tool: Tool{
				Name:        "create_contact",
				Description: "Create a new contact in GoHighLevel",
				InputSchema: schema(map[string]Property{
					"firstName":  stringProp("Contact's first name"),
					"lastName":   stringProp("Contact's last name"),
					"email":      stringProp("Contact's email address"),
					"phone":      stringProp("Contact's phone number"),
					"tags":       stringArrayProp("Tags to assign to the contact"),
					"source":     stringProp("Source the contact came from"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}, "email"),
			},
			handler: t.createContact,
		},
		{
			tool: Tool{
				Name:        "search_contacts",
				Description: "Search for contacts by name, email, or phone",
				InputSchema: schema(map[string]Property{
					"query":      stringProp("Free-text search across name, email, and phone"),
					"limit":      numberPropDefault("Maximum number of results", 25),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			policy:  returnResult,
			handler: t.searchContacts,
		},
		{
			tool: Tool{
				Name:        "get_contact",
				Description: "Get detailed information about a contact by ID",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
				}, "contactId"),
			},
			handler: t.getContact,
		},
		{
			tool: Tool{
				Name:        "update_contact",
				Description: "Update an existing contact's information",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"firstName": stringProp("Contact's first name"),
					"lastName":  stringProp("Contact's last name"),
					"email":     stringProp("Contact's email address"),
					"phone":     stringProp("Contact's phone number"),
				}, "contactId"),
			},
			handler: t.updateContact,
		},
		{
			tool: Tool{
				Name:        "delete_contact",
				Description: "Permanently delete a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
				}, "contactId"),
			},
			handler: t.deleteContact,
		},
		{
			tool: Tool{
				Name:        "upsert_contact",
				Description: "Create a contact, or update the existing one matched by email/phone",
				InputSchema: schema(map[string]Property{
					"firstName":  stringProp("Contact's first name"),
					"lastName":   stringProp("Contact's last name"),
					"email":      stringProp("Contact's email address"),
					"phone":      stringProp("Contact's phone number"),
					"tags":       stringArrayProp("Tags to assign to the contact"),
					"locationId": stringProp("Location ID (uses the configured default when omitted)"),
				}),
			},
			handler: t.upsertContact,
		},
		{
			tool: Tool{
				Name:        "add_contact_tags",
				Description: "Add tags to a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"tags":      stringArrayProp("Tags to add"),
				}, "contactId", "tags"),
			},
			handler: t.addTags,
		},
		{
			tool: Tool{
				Name:        "remove_contact_tags",
				Description: "Remove tags from a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"tags":      stringArrayProp("Tags to remove"),
				}, "contactId", "tags"),
			},
			handler: t.removeTags,
		},
		{
			tool: Tool{
				Name:        "get_contact_tasks",
				Description: "List all tasks for a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
				}, "contactId"),
			},
			handler: t.getTasks,
		},
		{
			tool: Tool{
				Name:        "create_contact_task",
				Description: "Create a task for a contact",
				InputSchema: schema(map[string]Property{
					"contactId":  stringProp("The contact's unique identifier"),
					"title":      stringProp("Task title"),
					"body":       stringProp("Task details"),
					"dueDate":    stringProp("Due date (ISO 8601)"),
					"assignedTo": stringProp("User ID to assign the task to"),
				}, "contactId", "title", "dueDate"),
			},
			handler: t.createTask,
		},
		{
			tool: Tool{
				Name:        "update_contact_task",
				Description: "Update a contact's task",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"taskId":    stringProp("The task's unique identifier"),
					"title":     stringProp("Task title"),
					"body":      stringProp("Task details"),
					"dueDate":   stringProp("Due date (ISO 8601)"),
					"completed": boolProp("Whether the task is completed"),
				}, "contactId", "taskId"),
			},
			handler: t.updateTask,
		},
		{
			tool: Tool{
				Name:        "delete_contact_task",
				Description: "Delete a contact's task",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"taskId":    stringProp("The task's unique identifier"),
				}, "contactId", "taskId"),
			},
			handler: t.deleteTask,
		},
		{
			tool: Tool{
				Name:        "get_contact_notes",
				Description: "List all notes on a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
				}, "contactId"),
			},
			handler: t.getNotes,
		},
		{
			tool: Tool{
				Name:        "create_contact_note",
				Description: "Add a note to a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"body":      stringProp("Note text"),
					"userId":    stringProp("User ID recording the note"),
				}, "contactId", "body"),
			},
			handler: t.createNote,
		},
		{
			tool: Tool{
				Name:        "update_contact_note",
				Description: "Update a note on a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"noteId":    stringProp("The note's unique identifier"),
					"body":      stringProp("Replacement note text"),
				}, "contactId", "noteId", "body"),
			},
			handler: t.updateNote,
		},
		{
			tool: Tool{
				Name:        "delete_contact_note",
				Description: "Delete a note from a contact",
				InputSchema: schema(map[string]Property{
					"contactId": stringProp("The contact's unique identifier"),
					"noteId":    stringProp("The note's unique identifier"),
				}, "contactId", "noteId"),
			},
			handler: t.deleteNote,
		},
	}
}

func (t *ContactTools) contactParams(args Args) ghl.CreateContactParams {
	return ghl.CreateContactParams{
		LocationID: args.String("locationId"),
		FirstName:  args.String("firstName"),
		LastName:   args.String("lastName"),
		Email:      args.String("email"),
		Phone:      args.String("phone"),
		Tags:       args.StringSlice("tags"),
		Source:     args.String("source"),
	}
}

func (t *ContactTools) createContact(ctx context.Context, args Args) (*Result, error) {
	contact, err := t.client.CreateContact(ctx, t.contactParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return ok(fmt.Sprintf("Contact created with ID %s", contact.ID), contact), nil
}

func (t *ContactTools) searchContacts(ctx context.Context, args Args) (*Result, error) {
	result, err := t.client.SearchContacts(ctx, ghl.SearchContactsParams{
		LocationID: args.String("locationId"),
		Query:      args.String("query"),
		Limit:      args.Int("limit"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	return ok(fmt.Sprintf("Found %d contacts", result.Total), result.Contacts), nil
}

func (t *ContactTools) getContact(ctx context.Context, args Args) (*Result, error) {
	contact, err := t.client.GetContact(ctx, args.String("contactId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return ok(fmt.Sprintf("Retrieved contact %s", contact.ID), contact), nil
}

func (t *ContactTools) updateContact(ctx context.Context, args Args) (*Result, error) {
	contact, err := t.client.UpdateContact(ctx, args.String("contactId"), t.contactParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return ok(fmt.Sprintf("Contact %s updated", contact.ID), contact), nil
}

func (t *ContactTools) deleteContact(ctx context.Context, args Args) (*Result, error) {
	contactID := args.String("contactId")
	if err := t.client.DeleteContact(ctx, contactID); err != nil {
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}
	return ok(fmt.Sprintf("Contact %s deleted", contactID), nil), nil
}

func (t *ContactTools) upsertContact(ctx context.Context, args Args) (*Result, error) {
	contact, created, err := t.client.UpsertContact(ctx, t.contactParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contact: %w", err)
	}
	verb := "updated"
	if created {
		verb = "created"
	}
	return ok(fmt.Sprintf("Contact %s %s", contact.ID, verb), contact), nil
}

func (t *ContactTools) addTags(ctx context.Context, args Args) (*Result, error) {
	tags, err := t.client.AddContactTags(ctx, args.String("contactId"), args.StringSlice("tags"))
	if err != nil {
		return nil, fmt.Errorf("failed to add contact tags: %w", err)
	}
	return ok(fmt.Sprintf("Contact now has %d tags", len(tags)), tags), nil
}

func (t *ContactTools) removeTags(ctx context.Context, args Args) (*Result, error) {
	tags, err := t.client.RemoveContactTags(ctx, args.String("contactId"), args.StringSlice("tags"))
	if err != nil {
		return nil, fmt.Errorf("failed to remove contact tags: %w", err)
	}
	return ok(fmt.Sprintf("Contact now has %d tags", len(tags)), tags), nil
}

func (t *ContactTools) getTasks(ctx context.Context, args Args) (*Result, error) {
	tasks, err := t.client.GetContactTasks(ctx, args.String("contactId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get contact tasks: %w", err)
	}
	return ok(fmt.Sprintf("Found %d tasks", len(tasks)), tasks), nil
}

func (t *ContactTools) taskParams(args Args) ghl.TaskParams {
	p := ghl.TaskParams{
		Title:      args.String("title"),
		Body:       args.String("body"),
		DueDate:    args.String("dueDate"),
		AssignedTo: args.String("assignedTo"),
	}
	if args.Has("completed") {
		completed := args.Bool("completed")
		p.Completed = &completed
	}
	return p
}

func (t *ContactTools) createTask(ctx context.Context, args Args) (*Result, error) {
	task, err := t.client.CreateContactTask(ctx, args.String("contactId"), t.taskParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to create contact task: %w", err)
	}
	return ok(fmt.Sprintf("Task created with ID %s", task.ID), task), nil
}

func (t *ContactTools) updateTask(ctx context.Context, args Args) (*Result, error) {
	task, err := t.client.UpdateContactTask(ctx, args.String("contactId"), args.String("taskId"), t.taskParams(args))
	if err != nil {
		return nil, fmt.Errorf("failed to update contact task: %w", err)
	}
	return ok(fmt.Sprintf("Task %s updated", task.ID), task), nil
}

func (t *ContactTools) deleteTask(ctx context.Context, args Args) (*Result, error) {
	taskID := args.String("taskId")
	if err := t.client.DeleteContactTask(ctx, args.String("contactId"), taskID); err != nil {
		return nil, fmt.Errorf("failed to delete contact task: %w", err)
	}
	return ok(fmt.Sprintf("Task %s deleted", taskID), nil), nil
}

func (t *ContactTools) getNotes(ctx context.Context, args Args) (*Result, error) {
	notes, err := t.client.GetContactNotes(ctx, args.String("contactId"))
	if err != nil {
		return nil, fmt.Errorf("failed to get contact notes: %w", err)
	}
	return ok(fmt.Sprintf("Found %d notes", len(notes)), notes), nil
}

func (t *ContactTools) createNote(ctx context.Context, args Args) (*Result, error) {
	note, err := t.client.CreateContactNote(ctx, args.String("contactId"), args.String("body"), args.String("userId"))
	if err != nil {
		return nil, fmt.Errorf("failed to create contact note: %w", err)
	}
	return ok(fmt.Sprintf("Note created with ID %s", note.ID), note), nil
}

func (t *ContactTools) updateNote(ctx context.Context, args Args) (*Result, error) {
	note, err := t.client.UpdateContactNote(ctx, args.String("contactId"), args.String("noteId"), args.String("body"))
	if err != nil {
		return nil, fmt.Errorf("failed to update contact note: %w", err)
	}
	return ok(fmt.Sprintf("Note %s updated", note.ID), note), nil
}

func (t *ContactTools) deleteNote(ctx context.Context, args Args) (*Result, error) {
	noteID := args.String("noteId")
	if err := t.client.DeleteContactNote(ctx, args.String("contactId"), noteID); err != nil {
		return nil, fmt.Errorf("failed to delete contact note: %w", err)
	}
	return ok(fmt.Sprintf("Note %s deleted", noteID), nil), nil
}
