/*
Package vesting implements time based release of granted funds.

A grant commits a total amount to a single recipient. The amount
accrues linearly between the start time and the end of the duration,
with nothing available before the cliff. The recipient can release the
accrued portion at any time and as often as desired. Bookkeeping of the
already released amount guarantees that repeated releases never pay out
more than what accrued.

Granted funds are held under a custodian account until released.
*/
package vesting
