package domain

// RunStatus represents the completion state of a scoring run
type RunStatus string

const (
	StatusIncomplete RunStatus = "incomplete"
	StatusComplete   RunStatus = "complete"
)

// ToolTag marks a capability the scored model had access to during the run
type ToolTag string

const (
	ToolNone            ToolTag = "none"
	ToolWebSearch       ToolTag = "web_search"
	ToolCodeInterpreter ToolTag = "code_interpreter"
	ToolRetrieval       ToolTag = "retrieval"
	ToolFileUpload      ToolTag = "file_upload"
)

// AllToolTags lists the selectable tags in display order
func AllToolTags() []ToolTag {
	return []ToolTag{ToolNone, ToolWebSearch, ToolCodeInterpreter, ToolRetrieval, ToolFileUpload}
}
