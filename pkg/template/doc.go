// Package template is the Template Engine: a simple
// named-template renderer over parametric sentence skeletons. Registered
// names include ORAL_TABLET_TEMPLATE, LIQUID_DOSE_TEMPLATE,
// TOPICLICK_TEMPLATE, PRN_RANGE_TEMPLATE, and DEFAULT_TEMPLATE.
//
// Rendering is deterministic: an identical DataBag always produces an
// identical string. Pluralization, verb selection, and fractional-dose
// Unicode formatting are resolved before the template ever sees the data,
// inside the DataBag constructor helpers in this package, not inside the
// templates themselves.
//
// Loading and parsing is grounded on a code generator's template-loader
// shape (embed.FS + text/template.Parse), adapted from code-generation
// output (parsed once per generator invocation, then formatted) to render
// small instruction sentences at request time.
package template
