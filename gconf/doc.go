/*

Package gconf provides a toolset for managing an extension configuration.

Every extension that defines a configuration object can use gconf to load the
initial state from the genesis, to access the current state from the database
and to update it with a transaction.

To use gconf you must:

1. declare a protobuf message that represents the configuration. It must
contain an owner address as only the owner can modify a configuration during
the runtime,

2. load the initial configuration from the genesis in your extension
initializer using the InitConfig function. Configurations of all extensions are
grouped in the genesis under the "conf" top level object, keyed by the package
name,

3. access the configuration state with the Load function,

4. to allow the configuration to be updated during the runtime, register the
update handler using NewUpdateConfigurationHandler. The update message must
contain a "Patch" field carrying the new configuration state. Fields with zero
values are ignored and do not overwrite the current state.

*/
package gconf
