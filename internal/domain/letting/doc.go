// Package letting contains the aggregates for the lettings side of the
// portfolio: properties, the tenants who occupy them, and the tenancy
// agreements binding one tenant to one property for a date range.
//
// Money flows (rent charges, payments, arrears) live in the finance package;
// letting only carries the agreement terms the finance engine computes from.
package letting
