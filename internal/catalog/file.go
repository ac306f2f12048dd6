package catalog

// FileCategory names the access method a File row is backed by. It
// mirrors internal/logfile's variant set but stays a plain catalog enum
// so this package never needs to import internal/logfile — the
// System_File row and the live ILogicalFile driver instance are
// deliberately two different objects linked only by FileID: a File row
// holds (id, parent_id, name, category, file_id_blob, area_id[],
// file_size) and nothing else.
type FileCategory int

const (
	FileCategoryRecord FileCategory = iota
	FileCategoryBtree
	FileCategoryVector
	FileCategoryBitmap
	FileCategoryArray
	FileCategoryKdTree
	FileCategoryFullText
	FileCategoryInverted
)

func (c FileCategory) String() string {
	names := [...]string{"Record", "Btree", "Vector", "Bitmap", "Array", "KdTree", "FullText", "Inverted"}
	if int(c) < 0 || int(c) >= len(names) {
		return "Unknown"
	}
	return names[c]
}

// File is the catalog's System_File row: one per physical access-method
// instance owned by a Table or Index. FileIDBlob is the opaque serialized
// fileid.FileID dump; the live driver is constructed from it on demand by
// internal/logfile's registry, never held directly here.
type File struct {
	Object

	Category   FileCategory
	FileIDBlob []byte
	AreaIDs    []int64
	Size       int64
}

// NewFile builds a File meta-row. The caller populates FileIDBlob once
// the variant driver has run its setFileID routine and the FileID has
// been serialized.
func NewFile(id, parentID int64, name string, category FileCategory) *File {
	return &File{
		Object:   Object{ID: id, ParentID: parentID, Name: name, Category: CategoryFile, Scope: ScopePermanent, Status: StatusCreated},
		Category: category,
	}
}
