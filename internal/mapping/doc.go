// Package mapping provides the YAML definition of a mapping table: its
// domain and range shapes, the wildcard token, and the CSV sources holding
// its rows.
//
// # Schema Overview
//
// The definition file has the following structure:
//
//	version: "1"
//	wildcard: "*"
//	header: true              # sources start with a row of leaf names
//	comma: ","
//	comment: "#"              # optional comment line marker
//	shapes:                   # named shapes, reusable as field types
//	  - name: IceCreamName
//	    fields: [brand_name, edition]
//	domain:
//	  name: IceCream
//	  fields:
//	    - {name: full_name, type: IceCreamName}
//	    - {name: flavour, type: enum, values: [vanilla, strawberry, chocolate, ants]}
//	    - {name: zip_code, type: int}
//	range:
//	  name: Product
//	  fields:
//	    - product_id
//	    - {name: reviews, type: enum, values: [bad, good]}
//	sources: [ice_cream.csv, more_ice_cream.csv]
//
// # Field Types
//
//   - string (default), int, bool: leaves
//   - enum: a leaf restricted to "values"
//   - the name of a shape under "shapes": a nested record
//   - inline "fields": a nested record whose shape is named by "type"
//     (or by the field name when "type" is empty)
//
// # Sources
//
// Source paths are relative to the definition file. With "header: true" each
// column names a leaf (dotted path, or bare leaf name when unique) and absent
// leaves are wildcards. Without a header every row lists all domain leaves
// followed by all range leaves. Rows of all sources form one table.
package mapping
