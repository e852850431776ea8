package logging

import (
	azlog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
)

// BridgeAzureSDK forwards azcore pipeline log events to the global logger at debug level.
func BridgeAzureSDK() {
	azlog.SetEvents(azlog.EventRequest, azlog.EventResponse, azlog.EventRetryPolicy, azlog.EventLRO)
	azlog.SetListener(func(event azlog.Event, msg string) {
		Logger().Debug(msg, "component", "azcore", "event", string(event))
	})
}

// UnbridgeAzureSDK stops forwarding azcore log events.
func UnbridgeAzureSDK() {
	azlog.SetListener(nil)
}
