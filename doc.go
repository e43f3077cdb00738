/*

Package tranche defines interfaces used throughout the application, such as:
storage, transactions, handlers etc.
It also contains helpers to work with errors, context, authentication and abci.
Look into this package to get a brief overview of design decisions made around
interfaces and extension building blocks.

*/

package tranche
