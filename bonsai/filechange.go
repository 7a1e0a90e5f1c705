// Copyright 2026 Liquidata, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bonsai

import "github.com/mononoke-go/corestore/typedhash"

// FileType distinguishes regular files from executables and symlinks, the
// only modes a bonsai changeset tracks (no further filesystem metadata).
type FileType string

const (
	FileTypeRegular    FileType = "regular"
	FileTypeExecutable FileType = "executable"
	FileTypeSymlink    FileType = "symlink"
)

// CopyInfo names the path and changeset a file's content was copied or
// moved from, when applicable.
type CopyInfo struct {
	Path       string                  `json:"path"`
	ParentFrom typedhash.ChangesetID   `json:"parent_from"`
}

// FileChange is either a Change (content present at this path in this
// changeset) or a Deletion (the path existed in a parent and doesn't
// here). Deleted is the discriminant; all other fields are zero when
// Deleted is true.
type FileChange struct {
	Deleted  bool              `json:"deleted"`
	ContentID typedhash.ContentID `json:"content_id,omitempty"`
	FileType FileType          `json:"file_type,omitempty"`
	Size     uint64            `json:"size,omitempty"`
	CopyFrom *CopyInfo         `json:"copy_from,omitempty"`
}

// NewFile builds a present (non-deleted) FileChange.
func NewFile(contentID typedhash.ContentID, fileType FileType, size uint64) FileChange {
	return FileChange{ContentID: contentID, FileType: fileType, Size: size}
}

// NewFileWithCopyFrom builds a present FileChange that records copy/move
// provenance from another path in an ancestor changeset.
func NewFileWithCopyFrom(contentID typedhash.ContentID, fileType FileType, size uint64, copyFrom CopyInfo) FileChange {
	fc := NewFile(contentID, fileType, size)
	fc.CopyFrom = &copyFrom
	return fc
}

// NewDeletion builds a FileChange recording that the path is gone.
func NewDeletion() FileChange {
	return FileChange{Deleted: true}
}
