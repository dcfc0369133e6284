package model

// Draft is the transient, unpersisted edit buffer behind the create/update
// form. DueDate holds the local-zone "YYYY-MM-DD HH:mm" string exactly as
// typed; it is only converted to an instant on submission.
type Draft struct {
	Title       string
	Description string
	DueDate     string
	Email       string
}
