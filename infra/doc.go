// Package infra contains technical adapters such as the PDF page source,
// the XLSX workbook store and metrics exporters. These packages should
// depend only on the interfaces defined in the core packages.
package infra
