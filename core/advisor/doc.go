// Package advisor proposes appointment slots for a new shoot.
//
// Suggestions come from three passes, in this order: photographers already
// working near the target address, the client's preferred photographer over
// the next few days, and any remaining photographer when the first two
// passes produced too little. Duplicated (date, time, photographer) slots
// keep their first occurrence and the list is capped.
package advisor
