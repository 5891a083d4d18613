// Command tv drives a tinkervision.dev/tv runtime instance from the shell:
// start the pipeline, list or load modules, wire scenes, and pull
// snapshots, mirroring the verbs exposed by package api. It is a bare
// cobra.Command tree with Execute as the sole entry point.
package main

func main() {
	Execute()
}
