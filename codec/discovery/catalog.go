package discovery

import (
	"fmt"
	"reflect"
	"sync"
)

// DefaultCatalog is the catalog of the process image. Codec packages declare
// their types in it from their init function.
var DefaultCatalog = NewCatalog()

// Declare adds the type of the prototype to the default catalog.
func Declare(proto interface{}) {
	DefaultCatalog.Declare(proto)
}

// DeclareFactory adds a type with its constructor to the default catalog.
func DeclareFactory(typ reflect.Type, fn func() (interface{}, error)) {
	DefaultCatalog.DeclareFactory(typ, fn)
}

// Catalog is an ordered list of candidates. Declaring the same type twice adds
// two candidates.
type Catalog struct {
	sync.Mutex
	candidates []Candidate
}

// NewCatalog returns a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Declare adds the type of the prototype to the catalog. Instances are created
// from the zero value of the type: a pointer prototype gives a pointer to a
// new zero value. It panics if the prototype is nil.
func (c *Catalog) Declare(proto interface{}) {
	typ := reflect.TypeOf(proto)
	if typ == nil {
		panic("discovery: declaring a nil prototype")
	}

	c.DeclareFactory(typ, func() (interface{}, error) {
		if typ.Kind() == reflect.Ptr {
			return reflect.New(typ.Elem()).Interface(), nil
		}

		return reflect.New(typ).Elem().Interface(), nil
	})
}

// DeclareFactory adds the type to the catalog with a custom constructor. The
// constructor may fail, in which case the loader reports the failure and
// continues with the other candidates. It panics if the type or the function
// is nil.
func (c *Catalog) DeclareFactory(typ reflect.Type, fn func() (interface{}, error)) {
	if typ == nil || fn == nil {
		panic("discovery: declaring a nil type or constructor")
	}

	c.Lock()
	c.candidates = append(c.candidates, Candidate{
		Name: typeName(typ),
		Type: typ,
		New:  fn,
	})
	c.Unlock()
}

// Candidates returns a copy of the candidates in declaration order.
func (c *Catalog) Candidates() []Candidate {
	c.Lock()
	defer c.Unlock()

	res := make([]Candidate, len(c.candidates))
	copy(res, c.candidates)

	return res
}

// Len returns the number of candidates.
func (c *Catalog) Len() int {
	c.Lock()
	defer c.Unlock()

	return len(c.candidates)
}

func typeName(typ reflect.Type) string {
	prefix := ""
	for typ.Kind() == reflect.Ptr {
		prefix += "*"
		typ = typ.Elem()
	}

	if typ.Name() == "" {
		return prefix + typ.String()
	}

	return fmt.Sprintf("%s%s.%s", prefix, typ.PkgPath(), typ.Name())
}
