// Package models defines the client-side data shapes shared by the session
// layer: users, local credential records, sessions and backend modes.
//
// Users are encoded as flat JSON objects. The typed fields (id, name, phone,
// profileCompleted) sit next to free-form profile attributes such as age,
// gender or lifestyle, which is the shape both the remote backend and the
// on-device store use.
package models
