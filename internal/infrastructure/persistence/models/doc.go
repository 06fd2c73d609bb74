// Package models contains the GORM persistence models that map domain
// entities to database tables. Domain entities never carry GORM tags for
// table layout; every aggregate has a model here with explicit column
// definitions and ToDomain/FromDomain conversions.
package models
