// Package database embed dosyası: migration SQL dosyalarını binary'ye gömer.
//
// //go:embed directive'i derleme zamanında dosyaları binary'nin içine koyar,
// deploy edilen binary yanında migration dosyalarına ihtiyaç duymaz.
package database

import (
	"embed"
	"io/fs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embeddedMigrations embed.FS

// SQLiteMigrations, SQLite runner'ının okuduğu alt dizin.
func SQLiteMigrations() fs.FS {
	return mustSub("migrations/sqlite")
}

// PostgresMigrations, goose'un okuduğu alt dizin.
func PostgresMigrations() fs.FS {
	return mustSub("migrations/postgres")
}

// mustSub: dizin adları derleme zamanında sabit, hata ancak embed pattern'ı bozulursa olur.
func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(embeddedMigrations, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
