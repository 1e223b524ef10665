// Package sheets talks to the Google Sheets v4 and Drive v3 REST APIs on behalf of the gateway.
//
// The client never stores credentials: every call takes the caller's OAuth access token.
// Grid responses are flattened into the tableData/gridMeta shape served to sheetkeeper clients.
package sheets
