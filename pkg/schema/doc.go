// Package schema validates loosely typed maps such as decoded frontmatter.
//
// A Schema maps field names to types. Fields are required unless wrapped in
// Optional, which may also supply a default:
//
//	entrySchema := schema.Schema{
//	    "title":       schema.String(),
//	    "description": schema.String(),
//	    "order":       schema.Optional(schema.Int(), nil),
//	    "draft":       schema.Optional(schema.Bool(), false),
//	}
//
//	data, err := schema.Normalize(entrySchema, frontmatter)
//
// Normalize reports every failure at once through *AggregateError and returns
// a copy with defaults applied and numbers coerced to int.
package schema
