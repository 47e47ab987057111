// Package srf provides a small client for the SRG SSR integration layer
// song list endpoint, which reports what a radio channel is playing now and
// what it played recently.
//
// # Quick Start
//
//	client, err := srf.NewClient(srf.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	list, err := client.SongList(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, song := range list.Songs {
//	    fmt.Println(song.Title, song.Artist.Name, song.IsPlayingNow)
//	}
//
// # Errors
//
// A response with a status other than 200 is returned as *StatusError and a
// body that is not valid JSON as *DecodeError. Transport failures are
// returned wrapped. The client never retries.
//
//	var statusErr *srf.StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Println("status", statusErr.StatusCode)
//	}
package srf
