package schemas

import (
	"fmt"
	"github.com/chromy/hilbertviz/internal/constants"
	"github.com/chromy/hilbertviz/internal/hilbert"
	"github.com/hypersequent/zen"
	"sort"
	"strings"
	"sync"
)

// Schema is a response type exported to the frontend as a zod schema.
type Schema struct {
	Id    string
	Value interface{}
}

type State struct {
	Schemas map[string]Schema
}

var (
	mu    sync.RWMutex
	state State
)

func Register(id string, structValue interface{}) {
	mu.Lock()
	defer mu.Unlock()

	schema := Schema{
		Id:    id,
		Value: structValue,
	}

	if _, found := state.Schemas[schema.Id]; found {
		panic(fmt.Sprintf("schema already registered %s", schema.Id))
	}

	state.Schemas[schema.Id] = schema
}

func Get(id string) (Schema, bool) {
	mu.RLock()
	defer mu.RUnlock()

	schema, found := state.Schemas[id]
	return schema, found
}

func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	list := make([]string, 0, len(state.Schemas))
	for id := range state.Schemas {
		list = append(list, id)
	}
	sort.Strings(list)
	return list
}

func ToZodSchema() string {
	mu.RLock()
	defer mu.RUnlock()

	var ids []string
	for id := range state.Schemas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	c := zen.NewConverterWithOpts()

	for _, id := range ids {
		c.AddType(state.Schemas[id].Value)
	}

	var text strings.Builder
	text.WriteString("import { z } from \"zod\";\n\n")
	fmt.Fprintf(&text, "export const TILE_SIZE = %d;\n", constants.TileSize)
	fmt.Fprintf(&text, "export const MAX_TILE_ORDER = %d;\n", constants.MaxTileOrder)
	fmt.Fprintf(&text, "export const MAX_ORDER = %d;\n\n", hilbert.MaxOrder)
	text.WriteString(c.Export())

	return text.String()
}

func init() {
	mu.Lock()
	defer mu.Unlock()
	state = State{}
	state.Schemas = make(map[string]Schema)
}
