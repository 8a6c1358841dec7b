package core

import (
	"context"
	"fmt"
)

// Operation names a post operation that a Store can broadcast.
type Operation string

const (
	OpGetAll                Operation = "get_all"
	OpGetExtra              Operation = "get_extra"
	OpGetMedia              Operation = "get_media"
	OpGetArtcom             Operation = "get_artcom"
	OpGetNotes              Operation = "get_notes"
	OpSetPaths              Operation = "set_paths"
	OpWrite                 Operation = "write"
	OpLoad                  Operation = "load"
	OpVerifyMedia           Operation = "verify_media"
	OpVerifyMediaByMD5      Operation = "verify_media_by_md5"
	OpVerifyMediaByFilesize Operation = "verify_media_by_filesize"
)

type postFunc func(Post, context.Context, ...Option) error

// operations binds every broadcastable name to the Post method it calls.
// Method expressions keep the table checked against the Post interface.
var operations = map[Operation]postFunc{
	OpGetAll:                Post.GetAll,
	OpGetExtra:              Post.GetExtra,
	OpGetMedia:              Post.GetMedia,
	OpGetArtcom:             Post.GetArtcom,
	OpGetNotes:              Post.GetNotes,
	OpSetPaths:              Post.SetPaths,
	OpWrite:                 Post.Write,
	OpLoad:                  Post.Load,
	OpVerifyMedia:           Post.VerifyMedia,
	OpVerifyMediaByMD5:      Post.VerifyMediaByMD5,
	OpVerifyMediaByFilesize: Post.VerifyMediaByFilesize,
}

// Operations returns the allow-list of broadcastable operations, in a stable order.
func Operations() []Operation {
	return []Operation{
		OpGetAll, OpGetExtra, OpGetMedia, OpGetArtcom, OpGetNotes,
		OpSetPaths, OpWrite, OpLoad,
		OpVerifyMedia, OpVerifyMediaByMD5, OpVerifyMediaByFilesize,
	}
}

// ParseOperation resolves a name (as typed on a command line) to an Operation.
func ParseOperation(name string) (Operation, error) {
	op := Operation(name)
	if !op.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}

// Valid reports whether op is on the allow-list.
func (op Operation) Valid() bool {
	_, ok := operations[op]
	return ok
}

func (op Operation) String() string {
	return string(op)
}
