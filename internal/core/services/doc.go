// Package services implements the application's driving ports:
// ingestion, querying, and notebook and source lifecycle. Services
// contain the orchestration logic and depend only on the driven ports
// and the extraction and ranking packages; all I/O goes through
// injected adapters.
package services
