// Package defs reads and writes definition files and checks their
// structure.
//
// Three YAML documents are supported:
//
//	# system definition
//	name: sys
//	fields:
//	  - field: {name: sys_title, dataType: text, systemMandatory: true}
//	  - set:
//	      name: sys_relations
//	      kind: complexChild
//	      fields:
//	        - field: {name: sys_slot}
//	mapper:
//	  fieldSet: sys
//	  mappings:
//	    - {field: sys_title, ui: {defaultSet: edit, label: Title}}
//	defaultUISets:
//	  - {name: edit, control: {name: sys_EditBox}}
//
//	# shared definition
//	groups:
//	  - name: Author
//	    fields: {name: Author, kind: multiPropertySimpleChild, fields: [...]}
//	    mapper: {fieldSet: Author, mappings: [...]}
//	defaultUISets: [...]
//
//	# local (or composed) definition
//	name: article
//	systemExcludes: [sys_reminder]
//	sharedIncludes: Author
//	sharedExcludes: [email]
//	fields: [...]
//	mapper: {...}
//
// Name lists accept a single string or a sequence. Entries of one field
// set must have unique names.
package defs
