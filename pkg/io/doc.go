// Package io reads invoice documents from YAML, TOML or JSON and writes
// aggregate summaries.
//
// # Invoice Format
//
// The three encodings share one schema. In YAML:
//
//	invoice_id: WT-2026-002
//	date: January 5, 2026
//	title: INVOICE
//	subtitle: Full-Stack Web Application Development
//	project: WatchTogether, a self-hosted watch party platform
//	summary: React + Node.js | 5,800+ lines | 13 major systems
//	rate: 250
//	sections:
//	  - name: "1. Foundation"
//	    items:
//	      - task: Project scaffold
//	        description: Repository, CI, Docker Compose
//	        hours: 3.5
//	deliverables:
//	  - Complete source code
//	terms:
//	  - Payment due within 30 days of invoice date
//
// Required fields are rate and sections; every item needs task and hours.
// Unknown keys are rejected so typos do not silently drop data.
//
// Rate and hours are decoded exactly: 0.1 stays 0.1, not the nearest binary
// float. They may be written as numbers or as quoted strings.
//
// # Import
//
// Use [ImportFile] to read a file (the format follows the extension) or
// [ReadInvoice] to read from any io.Reader:
//
//	doc, err := io.ImportFile("invoice.yaml")
//
// Decoding problems are reported as INVALID_INPUT; semantic checks such as
// positive hours happen later, in billing.Aggregate.
//
// # Export
//
// [WriteSummary] and [ExportSummary] write the aggregated totals and
// per-section shares as JSON, for scripts that only need the numbers.
package io
