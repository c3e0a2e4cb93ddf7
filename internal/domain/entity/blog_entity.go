package entity

import "time"

type BlogPost struct {
	ID               string
	AuthorID         string
	Title            string
	BannerImage      string
	Category         string
	ShortDescription string
	BodyText         string
	PostDate         time.Time
	LastModified     time.Time
}
