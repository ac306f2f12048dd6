package logfile

import (
	"fmt"

	"catalogkernel/internal/catalog"
	"catalogkernel/internal/fileid"
)

// AttachedFileID deserializes file.FileIDBlob, the wire-visible
// System_File row's opaque payload, reporting whether a persisted FileID
// was actually found. A variant constructor calls this before populating
// a fresh FileID so that reattaching a File created in an earlier
// process (or a File whose blob was hand-built at a pre-3 layout
// version) recovers the exact parameters on disk instead of silently
// rebuilding a current-version one.
func AttachedFileID(file *catalog.File) (*fileid.FileID, bool, error) {
	if len(file.FileIDBlob) == 0 {
		return nil, false, nil
	}
	id, err := fileid.Deserialize(file.FileIDBlob)
	if err != nil {
		return nil, false, fmt.Errorf("logfile: attach %s: %w", file.Name, err)
	}
	return id, true, nil
}

// PersistFileID serializes id and stores it on file.FileIDBlob. Every
// variant calls this exactly once, right after building a fresh FileID
// for a File with no prior blob, so the next logfile.New on the same
// File row attaches instead of rebuilding.
func PersistFileID(file *catalog.File, id *fileid.FileID) error {
	blob, err := id.Serialize()
	if err != nil {
		return fmt.Errorf("logfile: persist %s: %w", file.Name, err)
	}
	file.FileIDBlob = blob
	return nil
}
