package ycmd

// Backend event names sent through /event_notification.
const (
	// EventFileReadyToParse asks the backend to (re)parse a buffer; the
	// response carries diagnostics.
	EventFileReadyToParse = "FileReadyToParse"

	// EventBufferVisit tells the backend a buffer became active.
	EventBufferVisit = "BufferVisit"

	// EventBufferUnload tells the backend a buffer was closed.
	EventBufferUnload = "BufferUnload"

	// EventCurrentIdentifierFinished tells the backend the identifier under
	// the cursor was completed, so it can harvest it for the identifier
	// completer.
	EventCurrentIdentifierFinished = "CurrentIdentifierFinished"

	// EventInsertLeave tells the backend insert mode was left.
	EventInsertLeave = "InsertLeave"
)

// Completer command names sent through /run_completer_command.
const (
	commandGetType     = "GetType"
	commandGoTo        = "GoTo"
	commandGetDoc      = "GetDoc"
	commandGetDocQuick = "GetDocImprecise"
)
