// Package ownedbuf implements access control for a single owned byte
// region that is lent out to consumers as views.
//
// An Owner grants either any number of shared read-only views or exactly
// one exclusive mutable view, never both at once. Conflicting requests
// fail immediately instead of waiting. Every granted view must be
// released exactly once; leaking a view across Owner.Close or releasing
// one twice is a contract violation and fails loudly.
//
// Example usage:
//
//	owner, err := ownedbuf.New(ownedbuf.DefaultSize)
//	// ...
//	w, err := ownedbuf.NewMutableView(owner)
//	// ...
//	_ = w.SetByte(5, 0x7F)
//	w.Close()
package ownedbuf
