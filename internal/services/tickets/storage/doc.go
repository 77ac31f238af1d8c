// Package storage defines the slot backend that ticketdesk state lives in.
//
// A slot is one key holding one serialized value. Stores above this layer
// read a whole slot, change it in memory and write it back.
package storage
