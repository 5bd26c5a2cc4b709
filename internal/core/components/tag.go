package components

// Tag classifies consumables so consumers can bias their effect.
type Tag string

// TagNone marks an untagged consumable. Consumers may still bias it.
const TagNone Tag = ""
