package ipc

// Commands understood by a Session. The first three match the names a
// desktop shell invokes; the rest exist for scripted and interactive use.
const (
	CmdStageFiles      = "stage_files"
	CmdClearStaging    = "clear_staging"
	CmdGetFileSize     = "get_file_size"
	CmdListStaged      = "list_staged"
	CmdDescribeSources = "describe_sources"
	CmdQuit            = "quit"
)

// Request is one line of input.
//
//	{"cmd":"stage_files","paths":["/a/x.txt","/b/y.txt"]}
//	{"cmd":"get_file_size","path":"/a/x.txt"}
type Request struct {
	Cmd   string   `json:"cmd"`
	Paths []string `json:"paths,omitempty"`
	Path  string   `json:"path,omitempty"`
}

// Response is one line of output, written for every request.
type Response struct {
	OK     bool   `json:"ok"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SizeResult is the result of get_file_size.
type SizeResult struct {
	Bytes int64  `json:"bytes"`
	Human string `json:"human"`
}

// SourceResult is one element of the describe_sources result.
type SourceResult struct {
	Name string `json:"name"`
	Size string `json:"size"`
}
