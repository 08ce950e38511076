// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive writes file trees as archives.
//
// [WriteFS] walks an [fs.FS] and hands every entry to a [Writer]. The only
// [Writer] implementation is [CPIOWriter] that writes the SVR4 "newc" CPIO
// format as used for Linux initramfs images.
//
// Symbolic links are archived as links. This requires the [fs.FS] to
// implement [ReadLinkFS].
package archive
