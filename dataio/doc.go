// SPDX-License-Identifier: MIT

// Package dataio moves data across the process boundary: it decodes the
// tabular input series, encodes the score sequence, and resolves the
// locations both live at.
//
// Input layout (delimited text with a header row):
//
//	timestamp, f1, f2, …, fp, is_anomaly
//
// The first column (index) and the last column (label) are dropped; the
// remaining p columns form one row of the series per timestep.
//
// Output layout: one score per line in window-start order.
//
// Locations are plain filesystem paths or s3://bucket/key URIs.
package dataio
