// Copyright 2023 The Firefly Authors.
//
// Use of this source code is governed by a BSD 3-clause
// license that can be found in the LICENSE file.

package opcodesdb

// Dispatcher routes values to handlers using
// an open string tag, such as a record's type
// or an AST node's type.
//
// The set of tags is owned by the catalogue,
// so consumers register handlers for the tags
// they understand and use Fallback for the
// rest.
type Dispatcher[K ~string, V any] struct {
	handlers map[K]func(V) error

	// Fallback, if non-nil, is called for
	// tags without a handler. Otherwise,
	// such tags result in an
	// *UnhandledTagError.
	Fallback func(tag K, v V) error
}

// RecordDispatcher dispatches on RecordType.
type RecordDispatcher = Dispatcher[RecordType, *Record]

// NodeDispatcher dispatches on NodeType.
type NodeDispatcher = Dispatcher[NodeType, *Node]

// Register adds a handler for tag. Registering
// the same tag twice panics.
func (d *Dispatcher[K, V]) Register(tag K, fun func(V) error) {
	if fun == nil {
		panic("tag " + string(tag) + " registered with nil handler")
	}

	if d.handlers == nil {
		d.handlers = make(map[K]func(V) error)
	}

	if d.handlers[tag] != nil {
		panic("tag " + string(tag) + " already registered")
	}

	d.handlers[tag] = fun
}

// Handles returns whether a handler has been
// registered for tag.
func (d *Dispatcher[K, V]) Handles(tag K) bool {
	return d.handlers[tag] != nil
}

// Dispatch passes v to the handler for tag.
func (d *Dispatcher[K, V]) Dispatch(tag K, v V) error {
	if fun := d.handlers[tag]; fun != nil {
		return fun(v)
	}

	if d.Fallback != nil {
		return d.Fallback(tag, v)
	}

	return &UnhandledTagError{Tag: string(tag)}
}

// DispatchRecords passes each record to d, in
// document order, stopping at the first error.
func (db *Database) DispatchRecords(d *RecordDispatcher) error {
	for _, rec := range db.Records {
		err := d.Dispatch(rec.Type, rec)
		if err != nil {
			return err
		}
	}

	return nil
}

// DispatchNodes passes each AST node to d, in
// document order, stopping at the first error.
func (s *Syntax) DispatchNodes(d *NodeDispatcher) error {
	for _, node := range s.AST {
		err := d.Dispatch(node.Type, node)
		if err != nil {
			return err
		}
	}

	return nil
}
